package tagged

import (
	"fmt"
	"math/bits"
	"strings"
)

// ValType is the runtime type tag of a Value or item.
//
// Each kind is a distinct power of two so a tag can be tested against a
// mask of several kinds at once. The numeric codes are a binary
// compatibility contract: a new kind takes an unused bit, existing bits
// never move.
type ValType uint32

const (
	// Default is reported for an absent (nil) handle.
	Default ValType = 0

	Void        ValType = 1 << 0
	ActorID     ValType = 1 << 1
	Bool        ValType = 1 << 2
	Bytes       ValType = 1 << 3
	Change      ValType = 1 << 4
	ChangeHash  ValType = 1 << 5
	Counter     ValType = 1 << 6
	Doc         ValType = 1 << 7
	F64         ValType = 1 << 8
	Int         ValType = 1 << 9
	Null        ValType = 1 << 10
	ObjType     ValType = 1 << 11
	Str         ValType = 1 << 12
	SyncHave    ValType = 1 << 13
	SyncMessage ValType = 1 << 14
	SyncState   ValType = 1 << 15
	Timestamp   ValType = 1 << 16
	Uint        ValType = 1 << 17
	Unknown     ValType = 1 << 18
)

// numValTypeBits is the number of assigned bits.
const numValTypeBits = 19

var valTypeNames = [numValTypeBits]string{
	"void",
	"actor_id",
	"bool",
	"bytes",
	"change",
	"change_hash",
	"counter",
	"doc",
	"f64",
	"int",
	"null",
	"obj_type",
	"str",
	"sync_have",
	"sync_message",
	"sync_state",
	"timestamp",
	"uint",
	"unknown",
}

// ValTypes returns every non-default tag in ascending bit order.
func ValTypes() []ValType {
	out := make([]ValType, numValTypeBits)
	for i := range out {
		out[i] = 1 << i
	}
	return out
}

// IsSingle reports whether exactly one bit is set.
func (t ValType) IsSingle() bool {
	return bits.OnesCount32(uint32(t)) == 1
}

// Matches reports whether t shares at least one bit with mask.
func (t ValType) Matches(mask ValType) bool {
	return t&mask != 0
}

// String returns the tag's name, or the names of a mask joined with "|".
func (t ValType) String() string {
	if t == Default {
		return "default"
	}
	if t.IsSingle() {
		if i := bits.TrailingZeros32(uint32(t)); i < numValTypeBits {
			return valTypeNames[i]
		}
	}
	var parts []string
	for i := range numValTypeBits {
		if t&(1<<i) != 0 {
			parts = append(parts, valTypeNames[i])
		}
	}
	if extra := t &^ (1<<numValTypeBits - 1); extra != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(extra)))
	}
	return strings.Join(parts, "|")
}

// ParseValType maps a single tag name to its ValType.
func ParseValType(name string) (ValType, error) {
	if name == "default" {
		return Default, nil
	}
	for i, n := range valTypeNames {
		if n == name {
			return 1 << i, nil
		}
	}
	return Default, fmt.Errorf("unknown value type %q", name)
}

// ParseMask parses tag names separated by "|" or "," into a mask.
func ParseMask(s string) (ValType, error) {
	var mask ValType
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' || r == ' ' })
	if len(fields) == 0 {
		return Default, fmt.Errorf("empty value type mask")
	}
	for _, f := range fields {
		t, err := ParseValType(f)
		if err != nil {
			return Default, err
		}
		mask |= t
	}
	return mask, nil
}

// Mask combines tags into a multi-select mask.
func Mask(types ...ValType) ValType {
	var m ValType
	for _, t := range types {
		m |= t
	}
	return m
}

// Common masks.
const (
	// Scalars covers every tag a generic engine scalar can report.
	Scalars = Bool | Bytes | Counter | F64 | Int | Null | Str | Timestamp | Uint | Unknown

	// Integers covers the tags extractable as a 64-bit integer.
	Integers = Counter | Int | Timestamp | Uint

	// Sync covers the sync protocol artifacts.
	Sync = SyncHave | SyncMessage | SyncState
)

// slot maps a single-bit tag to its bit index. Default and masks map to
// the last slot, which no Value can report.
func slot(t ValType) int {
	if !t.IsSingle() {
		return numValTypeBits
	}
	return min(bits.TrailingZeros32(uint32(t)), numValTypeBits)
}
