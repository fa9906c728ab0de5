package am

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ChangeHashSize is the length of a change hash in bytes.
const ChangeHashSize = sha256.Size

// DomainChange prefixes the canonical encoding of a change before hashing.
const DomainChange = "amitem/change/v1"

// ChangeHash is the content address of a change.
type ChangeHash [ChangeHashSize]byte

// ChangeHashFromBytes copies b into a ChangeHash.
// Fails unless b is exactly ChangeHashSize bytes long.
func ChangeHashFromBytes(b []byte) (ChangeHash, error) {
	var h ChangeHash
	if len(b) != ChangeHashSize {
		return h, fmt.Errorf("change hash must be %d bytes, got %d", ChangeHashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// ParseChangeHash decodes a hex-encoded change hash.
func ParseChangeHash(s string) (ChangeHash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ChangeHash{}, fmt.Errorf("parse change hash %q: %w", s, err)
	}
	return ChangeHashFromBytes(b)
}

// String returns the lowercase hex encoding.
func (h ChangeHash) String() string {
	return hex.EncodeToString(h[:])
}

// Compare orders hashes bytewise.
func (h ChangeHash) Compare(other ChangeHash) int {
	return bytes.Compare(h[:], other[:])
}

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) ChangeHash {
	hasher := sha256.New()
	hasher.Write([]byte(domain))
	hasher.Write([]byte{0x00})
	hasher.Write(data)
	var h ChangeHash
	copy(h[:], hasher.Sum(nil))
	return h
}
