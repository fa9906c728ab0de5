package am

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDocClosed is returned by mutators after Close.
var ErrDocClosed = errors.New("document is closed")

// Doc is a document handle: the change log applied so far and its heads.
// A Doc is owned by exactly one caller at a time and is not safe for
// concurrent use.
type Doc struct {
	actor   ActorID
	changes []*Change
	byHash  map[ChangeHash]*Change
	heads   []ChangeHash
	closed  bool
}

// NewDoc returns an empty document that authors changes as actor.
func NewDoc(actor ActorID) *Doc {
	return &Doc{
		actor:  actor,
		byHash: make(map[ChangeHash]*Change),
	}
}

// ActorID returns the document's current actor.
func (d *Doc) ActorID() ActorID { return d.actor }

// SetActorID changes the actor used for future local changes.
func (d *Doc) SetActorID(actor ActorID) error {
	if d.closed {
		return ErrDocClosed
	}
	if actor.IsZero() {
		return fmt.Errorf("set actor id: actor is required")
	}
	d.actor = actor
	return nil
}

// ApplyChange appends c to the log. Applying a change twice is a no-op.
// Every dependency of c must already be applied.
func (d *Doc) ApplyChange(c *Change) error {
	if d.closed {
		return ErrDocClosed
	}
	if c == nil {
		return fmt.Errorf("apply change: change is nil")
	}
	if _, ok := d.byHash[c.Hash()]; ok {
		return nil
	}
	for _, dep := range c.deps {
		if _, ok := d.byHash[dep]; !ok {
			return fmt.Errorf("apply change %s: missing dependency %s", c.Hash(), dep)
		}
	}
	d.changes = append(d.changes, c)
	d.byHash[c.Hash()] = c

	heads := d.heads[:0:0]
	for _, h := range d.heads {
		if !slices.Contains(c.deps, h) {
			heads = append(heads, h)
		}
	}
	heads = append(heads, c.Hash())
	slices.SortFunc(heads, ChangeHash.Compare)
	d.heads = heads
	return nil
}

// Heads returns the sorted hashes of changes with no dependents.
func (d *Doc) Heads() []ChangeHash { return slices.Clone(d.heads) }

// Changes returns the applied changes in application order.
func (d *Doc) Changes() []*Change { return slices.Clone(d.changes) }

// Change looks up an applied change by hash.
func (d *Doc) Change(h ChangeHash) (*Change, bool) {
	c, ok := d.byHash[h]
	return c, ok
}

// Len returns the number of applied changes.
func (d *Doc) Len() int { return len(d.changes) }

// Close drops the change log. Further mutation fails with ErrDocClosed.
func (d *Doc) Close() {
	d.changes = nil
	d.byHash = nil
	d.heads = nil
	d.closed = true
}

// Closed reports whether Close has been called.
func (d *Doc) Closed() bool { return d.closed }
