// Package identity derives stable, non-reversible visitor identities from
// client network addresses. Likes are deduplicated against these digests so
// raw addresses are never stored.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher computes salted SHA-256 digests of client addresses. The same
// address and salt always produce the same token, which is what makes
// per-page like deduplication possible without keeping addresses around.
type Hasher struct {
	salt string
}

func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// Hash returns the hex digest of address+salt. An empty address is hashed
// as-is; it is a degenerate but valid identity.
func (h *Hasher) Hash(address string) string {
	sum := sha256.Sum256([]byte(address + h.salt))
	return hex.EncodeToString(sum[:])
}
