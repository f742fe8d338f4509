package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Domain-specific hash types
type (
	HistoryHash Hash
	DatasetHash Hash
)

func (h HistoryHash) String() string { return Hash(h).String() }
func (h DatasetHash) String() string { return Hash(h).String() }

// ComputeHash joins ordered parts with a separator that cannot occur in them and hashes
// the result. Order matters: callers pass parts in their canonical order.
func ComputeHash(parts []string) Hash {
	var data strings.Builder
	for _, p := range parts {
		data.WriteString(p)
		data.WriteByte(0x1f)
	}
	return NewHash([]byte(data.String()))
}
