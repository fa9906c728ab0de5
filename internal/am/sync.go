package am

import (
	"bytes"
	"slices"
)

// Have summarizes the changes a peer had at its last sync.
type Have struct {
	LastSync []ChangeHash
	Bloom    []byte
}

// Clone returns a deep copy of h.
func (h Have) Clone() Have {
	return Have{LastSync: slices.Clone(h.LastSync), Bloom: bytes.Clone(h.Bloom)}
}

// Equal compares two haves structurally.
func (h Have) Equal(other Have) bool {
	return slices.Equal(h.LastSync, other.LastSync) && bytes.Equal(h.Bloom, other.Bloom)
}

// Message is one sync protocol message.
type Message struct {
	Heads   []ChangeHash
	Need    []ChangeHash
	Have    []Have
	Changes []*Change
}

// Equal compares two messages structurally; changes compare by hash.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	return slices.Equal(m.Heads, other.Heads) &&
		slices.Equal(m.Need, other.Need) &&
		slices.EqualFunc(m.Have, other.Have, Have.Equal) &&
		slices.EqualFunc(m.Changes, other.Changes, (*Change).Equal)
}

// SyncState is the per-peer session state the protocol mutates between
// messages. Not safe for concurrent use.
type SyncState struct {
	sharedHeads   []ChangeHash
	lastSentHeads []ChangeHash
	theirHeads    []ChangeHash
	theirNeed     []ChangeHash
	theirHave     []Have
	sentHashes    map[ChangeHash]struct{}
}

// NewSyncState returns a state for a peer we have never synced with.
func NewSyncState() *SyncState {
	return &SyncState{sentHashes: make(map[ChangeHash]struct{})}
}

// ReceiveMessage records what the peer told us in m.
func (s *SyncState) ReceiveMessage(m *Message) {
	s.theirHeads = slices.Clone(m.Heads)
	s.theirNeed = slices.Clone(m.Need)
	s.theirHave = slices.Clone(m.Have)
}

// MarkSent records that heads were advertised and hashes were sent.
func (s *SyncState) MarkSent(heads []ChangeHash, hashes ...ChangeHash) {
	s.lastSentHeads = slices.Clone(heads)
	for _, h := range hashes {
		s.sentHashes[h] = struct{}{}
	}
}

// SetSharedHeads records the heads both peers are known to have.
func (s *SyncState) SetSharedHeads(heads []ChangeHash) {
	s.sharedHeads = slices.Clone(heads)
}

func (s *SyncState) SharedHeads() []ChangeHash   { return slices.Clone(s.sharedHeads) }
func (s *SyncState) LastSentHeads() []ChangeHash { return slices.Clone(s.lastSentHeads) }
func (s *SyncState) TheirHeads() []ChangeHash    { return slices.Clone(s.theirHeads) }
func (s *SyncState) TheirNeed() []ChangeHash     { return slices.Clone(s.theirNeed) }

// Sent reports whether h was already sent to the peer.
func (s *SyncState) Sent(h ChangeHash) bool {
	_, ok := s.sentHashes[h]
	return ok
}

// Reset forgets everything learned about the peer except shared heads.
func (s *SyncState) Reset() {
	s.lastSentHeads = nil
	s.theirHeads = nil
	s.theirNeed = nil
	s.theirHave = nil
	s.sentHashes = make(map[ChangeHash]struct{})
}

// Equal compares two states structurally.
func (s *SyncState) Equal(other *SyncState) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.sentHashes) != len(other.sentHashes) {
		return false
	}
	for h := range s.sentHashes {
		if _, ok := other.sentHashes[h]; !ok {
			return false
		}
	}
	return slices.Equal(s.sharedHeads, other.sharedHeads) &&
		slices.Equal(s.lastSentHeads, other.lastSentHeads) &&
		slices.Equal(s.theirHeads, other.theirHeads) &&
		slices.Equal(s.theirNeed, other.theirNeed) &&
		slices.EqualFunc(s.theirHave, other.theirHave, Have.Equal)
}
