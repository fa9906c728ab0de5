package am

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// ActorID identifies a replica that authors changes.
// The bytes are stored in a string so ActorID stays comparable.
type ActorID struct {
	raw string
}

// NewActorID returns a random 16-byte actor id.
func NewActorID() ActorID {
	id := uuid.New()
	return ActorID{raw: string(id[:])}
}

// ActorIDFromBytes copies b into an ActorID.
func ActorIDFromBytes(b []byte) (ActorID, error) {
	if len(b) == 0 {
		return ActorID{}, fmt.Errorf("actor id must not be empty")
	}
	return ActorID{raw: string(b)}, nil
}

// ParseActorID decodes a hex-encoded actor id.
func ParseActorID(s string) (ActorID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ActorID{}, fmt.Errorf("parse actor id %q: %w", s, err)
	}
	return ActorIDFromBytes(b)
}

// Bytes returns a copy of the actor id's bytes.
func (a ActorID) Bytes() []byte {
	return []byte(a.raw)
}

// IsZero reports whether a is the empty actor id.
func (a ActorID) IsZero() bool {
	return a.raw == ""
}

// String returns the lowercase hex encoding.
func (a ActorID) String() string {
	return hex.EncodeToString([]byte(a.raw))
}
