package tagged

import (
	"github.com/roach88/amitem/internal/am"
)

// Value is a sealed union of the payloads an engine operation can return.
// Only the types constructed by the New* functions implement it.
type Value interface {
	// ValType derives the tag from the active payload.
	ValType() ValType

	equal(other Value) bool
}

type actorIDValue struct {
	id am.ActorID
	// view is nil until ToActorID first projects the id.
	view *ActorIDView
}

type changeValue struct {
	change *am.Change
	// view is nil until ToChangeView first projects the change.
	view *ChangeView
}

type changeHashValue struct {
	hash am.ChangeHash
}

type docValue struct {
	doc *am.Doc
}

type syncHaveValue struct {
	have am.Have
}

type syncMessageValue struct {
	msg *am.Message
}

type syncStateValue struct {
	state *am.SyncState
}

type engineValue struct {
	v am.Value
}

// NewActorID wraps an actor id.
func NewActorID(id am.ActorID) Value { return &actorIDValue{id: id} }

// NewChange takes ownership of c. A nil change yields a nil Value.
func NewChange(c *am.Change) Value {
	if c == nil {
		return nil
	}
	return &changeValue{change: c}
}

// NewChangeHash wraps a change hash.
func NewChangeHash(h am.ChangeHash) Value { return &changeHashValue{hash: h} }

// NewDoc takes exclusive ownership of d. Releasing the value closes d. A
// nil document yields a nil Value.
func NewDoc(d *am.Doc) Value {
	if d == nil {
		return nil
	}
	return &docValue{doc: d}
}

// NewSyncHave takes ownership of h.
func NewSyncHave(h am.Have) Value { return &syncHaveValue{have: h} }

// NewSyncMessage takes ownership of m. A nil message yields a nil Value.
func NewSyncMessage(m *am.Message) Value {
	if m == nil {
		return nil
	}
	return &syncMessageValue{msg: m}
}

// NewSyncState takes exclusive ownership of s. A nil state yields a nil
// Value.
func NewSyncState(s *am.SyncState) Value {
	if s == nil {
		return nil
	}
	return &syncStateValue{state: s}
}

// NewValue wraps a generic engine value.
func NewValue(v am.Value) Value { return &engineValue{v: v} }

// NewString wraps an owned string as a str scalar.
func NewString(s string) Value { return NewValue(am.Scalar(am.Str(s))) }

// NewBool wraps a boolean scalar.
func NewBool(b bool) Value { return NewValue(am.Scalar(am.Boolean(b))) }

// NewCounter wraps a counter scalar.
func NewCounter(n int64) Value { return NewValue(am.Scalar(am.Counter(n))) }

// NewF64 wraps a 64-bit float scalar.
func NewF64(f float64) Value { return NewValue(am.Scalar(am.F64(f))) }

// NewInt wraps a signed integer scalar.
func NewInt(n int64) Value { return NewValue(am.Scalar(am.Int(n))) }

// NewNull wraps the null scalar.
func NewNull() Value { return NewValue(am.Scalar(am.Null())) }

// NewTimestamp wraps a timestamp in milliseconds since the epoch.
func NewTimestamp(ms int64) Value { return NewValue(am.Scalar(am.Timestamp(ms))) }

// NewUint wraps an unsigned integer scalar.
func NewUint(n uint64) Value { return NewValue(am.Scalar(am.Uint(n))) }

// NewObject wraps a reference to a new container of type t.
func NewObject(t am.ObjType) Value { return NewValue(am.Object(t)) }

// NewBytes wraps b as a bytes scalar without copying.
func NewBytes(b []byte) Value { return NewValue(am.Scalar(am.Bytes(b))) }

// NewScalar wraps any scalar.
func NewScalar(s am.ScalarValue) Value { return NewValue(am.Scalar(s)) }

// NewUnknown wraps raw bytes of an unrecognized type code.
func NewUnknown(typeCode uint8, b []byte) Value {
	return NewValue(am.Scalar(am.Unknown(typeCode, b)))
}

func (*actorIDValue) ValType() ValType     { return ActorID }
func (*changeValue) ValType() ValType      { return Change }
func (*changeHashValue) ValType() ValType  { return ChangeHash }
func (*docValue) ValType() ValType         { return Doc }
func (*syncHaveValue) ValType() ValType    { return SyncHave }
func (*syncMessageValue) ValType() ValType { return SyncMessage }
func (*syncStateValue) ValType() ValType   { return SyncState }

func (v *engineValue) ValType() ValType {
	if v.v.IsObject() {
		return ObjType
	}
	s, _ := v.v.Scalar()
	switch s.Kind() {
	case am.KindBoolean:
		return Bool
	case am.KindBytes:
		return Bytes
	case am.KindCounter:
		return Counter
	case am.KindF64:
		return F64
	case am.KindInt:
		return Int
	case am.KindNull:
		return Null
	case am.KindStr:
		return Str
	case am.KindTimestamp:
		return Timestamp
	case am.KindUint:
		return Uint
	}
	return Unknown
}

// TypeOf returns v's tag, or Void for a nil Value.
func TypeOf(v Value) ValType {
	if v == nil {
		return Void
	}
	return v.ValType()
}

// Equal compares two values of the same variant structurally. Documents
// compare by identity: two distinct documents are never equal, whatever
// their content. Two nil values are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(b)
}

func (v *actorIDValue) equal(other Value) bool {
	o, ok := other.(*actorIDValue)
	return ok && v.id == o.id
}

func (v *changeValue) equal(other Value) bool {
	o, ok := other.(*changeValue)
	return ok && v.change.Equal(o.change)
}

func (v *changeHashValue) equal(other Value) bool {
	o, ok := other.(*changeHashValue)
	return ok && v.hash == o.hash
}

func (v *docValue) equal(other Value) bool {
	o, ok := other.(*docValue)
	return ok && v.doc == o.doc
}

func (v *syncHaveValue) equal(other Value) bool {
	o, ok := other.(*syncHaveValue)
	return ok && v.have.Equal(o.have)
}

func (v *syncMessageValue) equal(other Value) bool {
	o, ok := other.(*syncMessageValue)
	return ok && v.msg.Equal(o.msg)
}

func (v *syncStateValue) equal(other Value) bool {
	o, ok := other.(*syncStateValue)
	return ok && v.state.Equal(o.state)
}

func (v *engineValue) equal(other Value) bool {
	o, ok := other.(*engineValue)
	return ok && v.v.Equal(o.v)
}

// Release drops the engine resources v owns: a document is closed and
// memoized projections are discarded. v must not be used afterwards.
func Release(v Value) {
	switch val := v.(type) {
	case *docValue:
		if val.doc != nil {
			val.doc.Close()
		}
	case *changeValue:
		val.view = nil
	case *actorIDValue:
		val.view = nil
	}
}
