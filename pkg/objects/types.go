package objects

import (
	"fmt"
	"io"
)

// ObjectType represents the kind of object stored in the repository.
// The set is closed: every operation that switches over it must handle
// all four kinds.
type ObjectType string

const (
	BlobType   ObjectType = "blob"
	TreeType   ObjectType = "tree"
	CommitType ObjectType = "commit"
	TagType    ObjectType = "tag"
)

const (
	NullByte  = byte(0)
	SpaceByte = byte(' ')
)

// String implements the Stringer interface
func (o ObjectType) String() string {
	return string(o)
}

// ParseObjectType converts a string to ObjectType
func ParseObjectType(s string) (ObjectType, error) {
	switch ObjectType(s) {
	case BlobType, TreeType, CommitType, TagType:
		return ObjectType(s), nil
	default:
		return "", fmt.Errorf("unknown object type: %s", s)
	}
}

// Object is the interface implemented by every repository object.
//
// Objects are immutable and content-addressed: the identity is the SHA-1
// of the canonical envelope "<kind> <payload-length>\0<payload>". Two
// objects with identical kind and payload always produce the same identity.
type Object interface {
	// Type returns the object kind
	Type() ObjectType

	// Content returns the raw payload of the object (without header)
	Content() ([]byte, error)

	// Hash returns the identity of the object
	Hash() (ObjectHash, error)

	// Size returns the size of the payload in bytes
	Size() (int64, error)

	// Serialize writes the object in its canonical storage envelope
	Serialize(w io.Writer) error

	// String returns a human-readable representation
	String() string
}
