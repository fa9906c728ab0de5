package item

import (
	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/tagged"
)

// Item is one row of a query result. Each of its three fields is
// independently optional; an item with none of them is the void result.
type Item struct {
	index *Index
	objID *am.ObjID
	value tagged.Value
}

// Exact builds an item addressed directly by object id.
func Exact(objID am.ObjID, v tagged.Value) *Item {
	return &Item{objID: &objID, value: v}
}

// Indexed builds an item read from a positional or keyed traversal of
// the container objID.
func Indexed(idx Index, objID am.ObjID, v tagged.Value) *Item {
	return &Item{index: &idx, objID: &objID, value: v}
}

// FromObjID builds a reference to a container without its contents.
func FromObjID(objID am.ObjID) *Item {
	return &Item{objID: &objID}
}

// FromValue builds an item carrying only a value.
func FromValue(v tagged.Value) *Item {
	return &Item{value: v}
}

// Void returns the item with no index, object id or value.
func Void() *Item {
	return &Item{}
}

func (it *Item) val() tagged.Value {
	if it == nil {
		return nil
	}
	return it.value
}

// Value returns the item's tagged value, nil if absent.
func (it *Item) Value() tagged.Value { return it.val() }

// Index returns the item's locator.
func (it *Item) Index() (Index, bool) {
	if it == nil || it.index == nil {
		return Index{}, false
	}
	return *it.index, true
}

// ObjID returns the owning object's id.
func (it *Item) ObjID() (am.ObjID, bool) {
	if it == nil || it.objID == nil {
		return am.ObjID{}, false
	}
	return *it.objID, true
}

// ValType returns the tag of the item's value, Void if it has none.
func (it *Item) ValType() tagged.ValType { return tagged.TypeOf(it.val()) }

// IdxType returns the kind of the item's locator, IdxDefault if it has none.
func (it *Item) IdxType() IdxType {
	if idx, ok := it.Index(); ok {
		return idx.Type()
	}
	return IdxDefault
}

// Key returns the map key the item was read from.
func (it *Item) Key() (string, error) {
	idx, _ := it.Index()
	return idx.Key()
}

// Pos returns the sequence position the item was read from.
func (it *Item) Pos() (uint64, error) {
	idx, _ := it.Index()
	return idx.Pos()
}

// Equal compares index, object id and value.
func (it *Item) Equal(other *Item) bool {
	if it == nil || other == nil {
		return it == other
	}
	return equalPtr(it.index, other.index) &&
		equalPtr(it.objID, other.objID) &&
		tagged.Equal(it.value, other.value)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Conversions delegate to the tagged value. An item without a value
// fails with the no-value error (see tagged.IsNoValue).

func (it *Item) ToActorID() (*tagged.ActorIDView, error) { return tagged.ToActorID(it.val()) }
func (it *Item) ToBool() (bool, error)                   { return tagged.ToBool(it.val()) }
func (it *Item) ToBytes() ([]byte, error)                { return tagged.ToBytes(it.val()) }
func (it *Item) ToChange() (*am.Change, error)           { return tagged.ToChange(it.val()) }
func (it *Item) ToChangeView() (*tagged.ChangeView, error) {
	return tagged.ToChangeView(it.val())
}
func (it *Item) ToChangeHash() (am.ChangeHash, error) { return tagged.ToChangeHash(it.val()) }
func (it *Item) ToCounter() (int64, error)            { return tagged.ToCounter(it.val()) }
func (it *Item) ToDoc() (*am.Doc, error)              { return tagged.ToDoc(it.val()) }
func (it *Item) ToF64() (float64, error)              { return tagged.ToF64(it.val()) }
func (it *Item) ToInt() (int64, error)                { return tagged.ToInt(it.val()) }
func (it *Item) ToObjType() (am.ObjType, error)       { return tagged.ToObjType(it.val()) }
func (it *Item) ToScalar() (am.ScalarValue, error)    { return tagged.ToScalar(it.val()) }
func (it *Item) ToStr() (string, error)               { return tagged.ToStr(it.val()) }
func (it *Item) ToSyncHave() (*am.Have, error)        { return tagged.ToSyncHave(it.val()) }
func (it *Item) ToSyncMessage() (*am.Message, error)  { return tagged.ToSyncMessage(it.val()) }
func (it *Item) ToSyncState() (*am.SyncState, error)  { return tagged.ToSyncState(it.val()) }
func (it *Item) ToTimestamp() (int64, error)          { return tagged.ToTimestamp(it.val()) }
func (it *Item) ToUint() (uint64, error)              { return tagged.ToUint(it.val()) }
func (it *Item) ToUnknown() (tagged.Unknown, error)   { return tagged.ToUnknown(it.val()) }
func (it *Item) ToValue() (am.Value, error)           { return tagged.ToValue(it.val()) }

// ToValueObjID returns the generic value together with its owning object.
// Fails with ErrInvalidObjID when the item has no object id, and with an
// InvalidValueType error when the value is absent or not generic.
func (it *Item) ToValueObjID() (am.Value, am.ObjID, error) {
	var objID *am.ObjID
	if it != nil {
		objID = it.objID
	}
	return tagged.ToValueObjID(it.val(), objID)
}

// release drops the engine resources owned by the item's value.
func (it *Item) release() {
	tagged.Release(it.value)
}
