package item

import (
	"context"
	"log/slog"

	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/tagged"
)

// shared is the state common to every alias of one handle.
type shared struct {
	refs int
	item *Item
}

// Handle is a counted reference to an Item. Duplicate adds an alias;
// Release drops one, and the item's engine resources are released with
// the last alias.
//
// Reads work through any live alias. The in-place operations ToChangeView,
// ToDoc and ToSyncState require the alias to be the only one, and fail
// with tagged.ErrExclusiveAccess otherwise.
type Handle struct {
	s        *shared
	released bool
}

// NewHandle wraps it in a handle with a reference count of one. A nil
// item is wrapped as the void item.
func NewHandle(it *Item) *Handle {
	if it == nil {
		it = Void()
	}
	return &Handle{s: &shared{refs: 1, item: it}}
}

func (h *Handle) live() bool {
	return h != nil && !h.released
}

// Duplicate returns a new alias of the same item. Returns nil for a nil
// or released handle.
func (h *Handle) Duplicate() *Handle {
	if !h.live() {
		return nil
	}
	h.s.refs++
	return &Handle{s: h.s}
}

// RefCount returns the number of live aliases, 0 for a nil or released
// handle.
func (h *Handle) RefCount() int {
	if !h.live() {
		return 0
	}
	return h.s.refs
}

// Release drops this alias. Releasing twice returns tagged.ErrReleased;
// releasing nil is a no-op.
func (h *Handle) Release() error {
	if h == nil {
		return nil
	}
	if h.released {
		return tagged.ErrReleased
	}
	h.released = true
	h.s.refs--
	if h.s.refs > 0 {
		return nil
	}
	it := h.s.item
	h.s.item = nil
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("item released",
			"val_type", it.ValType().String(),
			"idx_type", it.IdxType().String(),
		)
	}
	it.release()
	return nil
}

// Item returns the shared item, nil for a nil or released handle.
func (h *Handle) Item() *Item {
	if !h.live() {
		return nil
	}
	return h.s.item
}

// exclusive returns the item when h is its sole live alias.
func (h *Handle) exclusive() (*Item, error) {
	if h == nil {
		return nil, nil
	}
	if h.released {
		return nil, tagged.ErrReleased
	}
	if h.s.refs != 1 {
		return nil, tagged.ErrExclusiveAccess
	}
	return h.s.item, nil
}

// Equal compares the items behind two handles. Aliases of one item are
// always equal; a nil or released handle equals nothing.
func (h *Handle) Equal(other *Handle) bool {
	if !h.live() || !other.live() {
		return false
	}
	if h.s == other.s {
		return true
	}
	return h.s.item.Equal(other.s.item)
}

// ValType returns the tag of the shared item, or Default when h is nil or
// released.
func (h *Handle) ValType() tagged.ValType {
	if !h.live() {
		return tagged.Default
	}
	return h.s.item.ValType()
}

func (h *Handle) IdxType() IdxType                        { return h.Item().IdxType() }
func (h *Handle) Index() (Index, bool)                    { return h.Item().Index() }
func (h *Handle) ObjID() (am.ObjID, bool)                 { return h.Item().ObjID() }
func (h *Handle) Key() (string, error)                    { return h.Item().Key() }
func (h *Handle) Pos() (uint64, error)                    { return h.Item().Pos() }
func (h *Handle) Value() tagged.Value                     { return h.Item().Value() }
func (h *Handle) ToActorID() (*tagged.ActorIDView, error) { return h.Item().ToActorID() }
func (h *Handle) ToBool() (bool, error)                   { return h.Item().ToBool() }
func (h *Handle) ToBytes() ([]byte, error)                { return h.Item().ToBytes() }
func (h *Handle) ToChange() (*am.Change, error)           { return h.Item().ToChange() }
func (h *Handle) ToChangeHash() (am.ChangeHash, error)    { return h.Item().ToChangeHash() }
func (h *Handle) ToCounter() (int64, error)               { return h.Item().ToCounter() }
func (h *Handle) ToF64() (float64, error)                 { return h.Item().ToF64() }
func (h *Handle) ToInt() (int64, error)                   { return h.Item().ToInt() }
func (h *Handle) ToObjType() (am.ObjType, error)          { return h.Item().ToObjType() }
func (h *Handle) ToScalar() (am.ScalarValue, error)       { return h.Item().ToScalar() }
func (h *Handle) ToStr() (string, error)                  { return h.Item().ToStr() }
func (h *Handle) ToSyncHave() (*am.Have, error)           { return h.Item().ToSyncHave() }
func (h *Handle) ToSyncMessage() (*am.Message, error)     { return h.Item().ToSyncMessage() }
func (h *Handle) ToTimestamp() (int64, error)             { return h.Item().ToTimestamp() }
func (h *Handle) ToUint() (uint64, error)                 { return h.Item().ToUint() }
func (h *Handle) ToUnknown() (tagged.Unknown, error)      { return h.Item().ToUnknown() }
func (h *Handle) ToValue() (am.Value, error)              { return h.Item().ToValue() }

// ToValueObjID returns the generic value together with its owning object.
func (h *Handle) ToValueObjID() (am.Value, am.ObjID, error) {
	return h.Item().ToValueObjID()
}

// ToChangeView returns the change projection for in-place use.
func (h *Handle) ToChangeView() (*tagged.ChangeView, error) {
	it, err := h.exclusive()
	if err != nil {
		return nil, err
	}
	return it.ToChangeView()
}

// ToDoc returns the document for in-place use.
func (h *Handle) ToDoc() (*am.Doc, error) {
	it, err := h.exclusive()
	if err != nil {
		return nil, err
	}
	return it.ToDoc()
}

// ToSyncState returns the sync state for in-place use.
func (h *Handle) ToSyncState() (*am.SyncState, error) {
	it, err := h.exclusive()
	if err != nil {
		return nil, err
	}
	return it.ToSyncState()
}
