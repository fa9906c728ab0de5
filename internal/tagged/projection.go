package tagged

import (
	"github.com/roach88/amitem/internal/am"
)

// ActorIDView is the boundary-facing projection of an actor id. It is
// built on first request and reused for the lifetime of its Value.
type ActorIDView struct {
	id    am.ActorID
	bytes []byte
	hex   string
}

func newActorIDView(id am.ActorID) *ActorIDView {
	return &ActorIDView{id: id, bytes: id.Bytes(), hex: id.String()}
}

// ActorID returns the projected actor id.
func (v *ActorIDView) ActorID() am.ActorID { return v.id }

// Bytes returns the id's bytes. The slice is shared; callers must not modify it.
func (v *ActorIDView) Bytes() []byte { return v.bytes }

// String returns the hex encoding.
func (v *ActorIDView) String() string { return v.hex }

// ChangeView is the boundary-facing projection of a change. Fixed-size
// fields are copied eagerly; the actor projection and encoded bytes are
// built on first request, which is why obtaining a ChangeView through a
// shared handle requires exclusive access.
type ChangeView struct {
	change  *am.Change
	hash    am.ChangeHash
	message []byte
	deps    []am.ChangeHash

	actor   *ActorIDView
	encoded []byte
}

func newChangeView(c *am.Change) *ChangeView {
	return &ChangeView{
		change:  c,
		hash:    c.Hash(),
		message: []byte(c.Message()),
		deps:    c.Deps(),
	}
}

// Change returns the underlying engine change.
func (v *ChangeView) Change() *am.Change { return v.change }

// Hash returns the change hash bytes. The slice aliases the view.
func (v *ChangeView) Hash() []byte { return v.hash[:] }

// Message returns the commit message bytes.
func (v *ChangeView) Message() []byte { return v.message }

// Deps returns the dependency hashes.
func (v *ChangeView) Deps() []am.ChangeHash { return v.deps }

func (v *ChangeView) Seq() uint64     { return v.change.Seq() }
func (v *ChangeView) StartOp() uint64 { return v.change.StartOp() }
func (v *ChangeView) MaxOp() uint64   { return v.change.MaxOp() }
func (v *ChangeView) Time() int64     { return v.change.Time() }
func (v *ChangeView) Size() int       { return v.change.Len() }

// ActorID returns the author's projection, building it on first use.
func (v *ChangeView) ActorID() *ActorIDView {
	if v.actor == nil {
		v.actor = newActorIDView(v.change.Actor())
	}
	return v.actor
}

// Encoded returns the canonical bytes the hash covers, building them on first use.
func (v *ChangeView) Encoded() []byte {
	if v.encoded == nil {
		v.encoded = v.change.Encoded()
	}
	return v.encoded
}
