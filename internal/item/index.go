package item

import (
	"fmt"

	"github.com/roach88/amitem/internal/tagged"
)

// IdxType tells whether an item was addressed by position, by key, or
// neither. The codes are fixed like tagged.ValType codes.
type IdxType uint8

const (
	IdxDefault IdxType = 0
	IdxKey     IdxType = 1
	IdxPos     IdxType = 2
)

func (t IdxType) String() string {
	switch t {
	case IdxDefault:
		return "default"
	case IdxKey:
		return "key"
	case IdxPos:
		return "pos"
	}
	return fmt.Sprintf("IdxType(%d)", uint8(t))
}

// Index locates an item within its container: a key within a map, or a
// position within a list or text.
type Index struct {
	typ IdxType
	key string
	pos uint64
}

// KeyIndex returns a map-key locator.
func KeyIndex(key string) Index {
	return Index{typ: IdxKey, key: key}
}

// PosIndex returns a sequence-position locator.
func PosIndex(pos uint64) Index {
	return Index{typ: IdxPos, pos: pos}
}

var (
	errNotKey = &tagged.Error{Code: tagged.ErrCodeInvalidValueType, Expected: "key", Unexpected: "pos"}
	errNotPos = &tagged.Error{Code: tagged.ErrCodeInvalidValueType, Expected: "pos", Unexpected: "key"}
	errNoKey  = &tagged.Error{Code: tagged.ErrCodeInvalidValueType, Expected: "key", Unexpected: "default"}
	errNoPos  = &tagged.Error{Code: tagged.ErrCodeInvalidValueType, Expected: "pos", Unexpected: "default"}
)

// Type returns IdxKey or IdxPos.
func (i Index) Type() IdxType { return i.typ }

// Key returns the map key, failing for a positional index.
func (i Index) Key() (string, error) {
	switch i.typ {
	case IdxKey:
		return i.key, nil
	case IdxPos:
		return "", errNotKey
	}
	return "", errNoKey
}

// Pos returns the sequence position, failing for a keyed index.
func (i Index) Pos() (uint64, error) {
	switch i.typ {
	case IdxPos:
		return i.pos, nil
	case IdxKey:
		return 0, errNotPos
	}
	return 0, errNoPos
}

func (i Index) String() string {
	switch i.typ {
	case IdxKey:
		return fmt.Sprintf("key(%q)", i.key)
	case IdxPos:
		return fmt.Sprintf("pos(%d)", i.pos)
	}
	return "default"
}
