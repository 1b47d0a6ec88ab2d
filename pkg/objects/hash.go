package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// ObjectHash represents the identity of an object: the SHA-1 of its
// canonical envelope, as a 40-character lowercase hex string.
// Example: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"
type ObjectHash string

const (
	// HashLength is the length of a full identity in hex characters
	HashLength = 40

	// ShortHashLength is the default length for abbreviated identities
	ShortHashLength = 7

	// MinPrefixLength is the shortest abbreviated identity the revision
	// grammar accepts
	MinPrefixLength = 4
)

// ZeroHash returns an all-zero identity (used for uninitialized references)
func ZeroHash() ObjectHash {
	return ObjectHash(strings.Repeat("0", HashLength))
}

// NewObjectHash computes the identity of the given canonical envelope bytes
func NewObjectHash(data []byte) ObjectHash {
	sum := sha1.Sum(data)
	return ObjectHash(hex.EncodeToString(sum[:]))
}

// NewObjectHashFromString creates an ObjectHash from a hex string.
// Returns an error if the string is not a valid identity.
func NewObjectHashFromString(s string) (ObjectHash, error) {
	hash := ObjectHash(strings.ToLower(s))
	if err := hash.Validate(); err != nil {
		return "", err
	}
	return hash, nil
}

// ComputeObjectHash computes the identity from kind and payload.
// The envelope is "<kind> <payload-length>\0<payload>".
func ComputeObjectHash(objType ObjectType, payload []byte) ObjectHash {
	return NewObjectHash(WrapPayload(objType, payload))
}

// String returns the identity as a string
func (h ObjectHash) String() string {
	return string(h)
}

// IsValid returns true if this is a valid identity
func (h ObjectHash) IsValid() bool {
	return h.Validate() == nil
}

// Validate checks the identity for correct length and hex content
func (h ObjectHash) Validate() error {
	if len(h) != HashLength {
		return fmt.Errorf("hash must be %d characters long, got %d", HashLength, len(h))
	}

	for _, c := range h {
		if !IsHexChar(c) {
			return fmt.Errorf("hash must contain only hex characters, found '%c'", c)
		}
	}

	return nil
}

// IsZero returns true if this is the zero identity
func (h ObjectHash) IsZero() bool {
	return h == ZeroHash()
}

// Short returns the abbreviated form of the identity
func (h ObjectHash) Short() string {
	if len(h) >= ShortHashLength {
		return string(h[:ShortHashLength])
	}
	return string(h)
}

// Bytes returns the identity as raw bytes (decoded from hex)
func (h ObjectHash) Bytes() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return hex.DecodeString(string(h))
}

// HasPrefix returns true if the identity starts with the given hex prefix
func (h ObjectHash) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(h), strings.ToLower(prefix))
}

// IsHexChar returns true if the character is a valid hex character
func IsHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// IsHexString returns true if every character of s is a hex character and
// s is non-empty
func IsHexString(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !IsHexChar(c) {
			return false
		}
	}
	return true
}
