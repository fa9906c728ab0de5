package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/amitem/internal/am"
)

// BaseTime is the timestamp of the first change a ChangeChain builds, in
// milliseconds since the epoch.
const BaseTime int64 = 1_700_000_000_000

// ChangeChain builds a linear history for one actor: each change depends
// on the previous one, seq counts from 1, and time advances one second
// per change. Not safe for concurrent use.
type ChangeChain struct {
	actor am.ActorID
	seq   uint64
	head  *am.Change
}

// NewChangeChain starts an empty history for actor.
func NewChangeChain(actor am.ActorID) *ChangeChain {
	return &ChangeChain{actor: actor}
}

// Next builds the next change with the given message and ops.
func (c *ChangeChain) Next(t testing.TB, message string, ops ...am.Op) *am.Change {
	t.Helper()

	c.seq++
	p := am.ChangeParams{
		Actor:   c.actor,
		Seq:     c.seq,
		Time:    BaseTime + int64(c.seq-1)*1000,
		Message: message,
		Ops:     ops,
	}
	if c.head != nil {
		p.StartOp = c.head.MaxOp() + 1
		p.Deps = []am.ChangeHash{c.head.Hash()}
	} else {
		p.StartOp = 1
	}
	change, err := am.NewChange(p)
	require.NoError(t, err)
	c.head = change
	return change
}

// Head returns the last change built, nil before the first Next.
func (c *ChangeChain) Head() *am.Change {
	return c.head
}

// Doc returns a document for the chain's actor with changes applied in
// order.
func Doc(t testing.TB, actor am.ActorID, changes ...*am.Change) *am.Doc {
	t.Helper()

	doc := am.NewDoc(actor)
	for _, change := range changes {
		require.NoError(t, doc.ApplyChange(change))
	}
	return doc
}
