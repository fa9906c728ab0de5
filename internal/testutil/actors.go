package testutil

import (
	"encoding/binary"
	"sync"

	"github.com/roach88/amitem/internal/am"
)

// ActorSequence hands out deterministic actor ids for tests.
//
// The n-th id is the 8-byte big-endian encoding of n, so the first is
// "0000000000000001". Use it where am.NewActorID's random ids would make
// golden output or hashes unstable.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ActorSequence struct {
	mu sync.Mutex
	n  uint64
}

// NewActorSequence creates a sequence whose first Next returns id 1.
func NewActorSequence() *ActorSequence {
	return &ActorSequence{}
}

// Next returns the next actor id.
func (s *ActorSequence) Next() am.ActorID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return Actor(s.n)
}

// Reset rewinds the sequence. After Reset, Next returns id 1 again.
func (s *ActorSequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}

// Actor returns the n-th deterministic actor id.
func Actor(n uint64) am.ActorID {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	id, err := am.ActorIDFromBytes(b[:])
	if err != nil {
		panic(err) // unreachable: b is never empty
	}
	return id
}
