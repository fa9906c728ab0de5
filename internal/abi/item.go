package abi

import (
	"context"
	"log/slog"

	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/item"
	"github.com/roach88/amitem/internal/tagged"
)

// swallowed records an error that a boundary function turned into a sentinel.
func swallowed(op string, err error) {
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("boundary sentinel", "op", op, "error", err)
	}
}

func fromValue(v tagged.Value) *Result {
	return itemResult(item.NewHandle(item.FromValue(v)))
}

// ItemEqual reports whether two handles hold equal items. It is false when
// either is nil.
func ItemEqual(a, b *item.Handle) bool {
	return a.Equal(b)
}

// The ItemFrom scalar constructors return a result holding one item with
// the given value and no object id.
func ItemFromBool(b bool) *Result        { return fromValue(tagged.NewBool(b)) }
func ItemFromCounter(n int64) *Result    { return fromValue(tagged.NewCounter(n)) }
func ItemFromF64(f float64) *Result      { return fromValue(tagged.NewF64(f)) }
func ItemFromInt(n int64) *Result        { return fromValue(tagged.NewInt(n)) }
func ItemFromNull() *Result              { return fromValue(tagged.NewNull()) }
func ItemFromStr(s ByteSpan) *Result     { return fromValue(tagged.NewString(s.String())) }
func ItemFromTimestamp(ms int64) *Result { return fromValue(tagged.NewTimestamp(ms)) }
func ItemFromUint(n uint64) *Result      { return fromValue(tagged.NewUint(n)) }

// ItemFromBytes copies src into a new bytes item.
func ItemFromBytes(src []byte) *Result {
	return fromValue(tagged.NewBytes(append([]byte(nil), src...)))
}

// ItemFromChangeHash returns an error result unless span holds exactly
// am.ChangeHashSize bytes.
func ItemFromChangeHash(span ByteSpan) *Result {
	h, err := am.ChangeHashFromBytes(span.Src)
	if err != nil {
		return errorResult(err)
	}
	return fromValue(tagged.NewChangeHash(h))
}

// ItemIdxType returns IdxDefault for a nil handle.
func ItemIdxType(h *item.Handle) item.IdxType {
	return h.IdxType()
}

// ItemObjID returns the id of the item's owning object, nil if absent.
func ItemObjID(h *item.Handle) *am.ObjID {
	id, ok := h.ObjID()
	if !ok {
		return nil
	}
	return &id
}

// ItemKey returns the map key the item was read from, or the empty span.
func ItemKey(h *item.Handle) ByteSpan {
	key, err := h.Key()
	if err != nil {
		swallowed("ItemKey", err)
		return ByteSpan{}
	}
	return Str(key)
}

// ItemPos returns the sequence position the item was read from, or
// PosNotFound.
func ItemPos(h *item.Handle) uint64 {
	pos, err := h.Pos()
	if err != nil {
		swallowed("ItemPos", err)
		return PosNotFound
	}
	return pos
}

// ItemRefCount returns the number of live aliases of h's item.
func ItemRefCount(h *item.Handle) int {
	return h.RefCount()
}

// ItemResult returns a result owning a new alias of h, nil for a nil or
// released handle.
func ItemResult(h *item.Handle) *Result {
	d := h.Duplicate()
	if d == nil {
		return nil
	}
	return itemResult(d)
}

// ItemValType returns Default for a nil handle and Void for one without a
// value.
func ItemValType(h *item.Handle) tagged.ValType {
	return h.ValType()
}

// ItemToActorID returns the memoized actor id projection, or nil.
func ItemToActorID(h *item.Handle) *tagged.ActorIDView {
	v, err := h.ToActorID()
	if err != nil {
		swallowed("ItemToActorID", err)
		return nil
	}
	return v
}

// ItemToBool returns the boolean payload, or false.
func ItemToBool(h *item.Handle) bool {
	b, err := h.ToBool()
	if err != nil {
		swallowed("ItemToBool", err)
		return false
	}
	return b
}

// ItemToBytes returns a span over the bytes payload, or an empty span.
func ItemToBytes(h *item.Handle) ByteSpan {
	b, err := h.ToBytes()
	if err != nil {
		swallowed("ItemToBytes", err)
		return ByteSpan{}
	}
	return ByteSpan{Src: b}
}

// ItemToChange returns the change projection for in-place use. Requires
// h to be the only alias.
func ItemToChange(h *item.Handle) *tagged.ChangeView {
	v, err := h.ToChangeView()
	if err != nil {
		swallowed("ItemToChange", err)
		return nil
	}
	return v
}

// ItemToChangeHash returns a span over the change hash, or an empty span.
func ItemToChangeHash(h *item.Handle) ByteSpan {
	hash, err := h.ToChangeHash()
	if err != nil {
		swallowed("ItemToChangeHash", err)
		return ByteSpan{}
	}
	return ByteSpan{Src: hash[:]}
}

// ItemToCounter returns the counter payload, or IntSentinel.
func ItemToCounter(h *item.Handle) int64 {
	n, err := h.ToCounter()
	if err != nil {
		swallowed("ItemToCounter", err)
		return IntSentinel
	}
	return n
}

// ItemToDoc returns the document for in-place use. Requires h to be the
// only alias.
func ItemToDoc(h *item.Handle) *am.Doc {
	d, err := h.ToDoc()
	if err != nil {
		swallowed("ItemToDoc", err)
		return nil
	}
	return d
}

// ItemToF64 returns the float payload, or F64Sentinel.
func ItemToF64(h *item.Handle) float64 {
	f, err := h.ToF64()
	if err != nil {
		swallowed("ItemToF64", err)
		return F64Sentinel
	}
	return f
}

// ItemToInt returns the signed integer payload, or IntSentinel.
func ItemToInt(h *item.Handle) int64 {
	n, err := h.ToInt()
	if err != nil {
		swallowed("ItemToInt", err)
		return IntSentinel
	}
	return n
}

// ItemToStr returns a span over the string payload, or an empty span.
func ItemToStr(h *item.Handle) ByteSpan {
	s, err := h.ToStr()
	if err != nil {
		swallowed("ItemToStr", err)
		return ByteSpan{}
	}
	return Str(s)
}

// ItemToSyncHave returns a copy of the sync have, or nil.
func ItemToSyncHave(h *item.Handle) *am.Have {
	v, err := h.ToSyncHave()
	if err != nil {
		swallowed("ItemToSyncHave", err)
		return nil
	}
	return v
}

// ItemToSyncMessage returns the sync message for read-only use, or nil.
func ItemToSyncMessage(h *item.Handle) *am.Message {
	m, err := h.ToSyncMessage()
	if err != nil {
		swallowed("ItemToSyncMessage", err)
		return nil
	}
	return m
}

// ItemToSyncState returns the sync state for in-place use. Requires h to
// be the only alias.
func ItemToSyncState(h *item.Handle) *am.SyncState {
	s, err := h.ToSyncState()
	if err != nil {
		swallowed("ItemToSyncState", err)
		return nil
	}
	return s
}

// ItemToTimestamp returns the timestamp in milliseconds, or IntSentinel.
func ItemToTimestamp(h *item.Handle) int64 {
	ms, err := h.ToTimestamp()
	if err != nil {
		swallowed("ItemToTimestamp", err)
		return IntSentinel
	}
	return ms
}

// ItemToUint returns the unsigned integer payload, or UintSentinel.
func ItemToUint(h *item.Handle) uint64 {
	n, err := h.ToUint()
	if err != nil {
		swallowed("ItemToUint", err)
		return UintSentinel
	}
	return n
}

// ItemToUnknown returns the type code and bytes of an unknown scalar, or
// the zero UnknownValue.
func ItemToUnknown(h *item.Handle) UnknownValue {
	u, err := h.ToUnknown()
	if err != nil {
		swallowed("ItemToUnknown", err)
		return UnknownValue{}
	}
	return UnknownValue{Bytes: ByteSpan{Src: u.Bytes}, TypeCode: u.TypeCode}
}
