package blob

import (
	"fmt"
	"io"

	"github.com/minigit-vcs/minigit/pkg/objects"
)

// Blob represents raw file content.
//
// A blob has no internal structure: its payload is exactly the bytes of the
// file it was hashed from. Blobs carry no name or mode; that context lives
// in the tree entries that reference them, which is what lets identical file
// content share one stored object.
type Blob struct {
	data []byte
	sha  objects.ObjectHash
}

// NewBlob creates a blob from raw content
func NewBlob(data []byte) *Blob {
	return &Blob{data: data}
}

// ParseBlob parses a blob object from its canonical envelope
func ParseBlob(data []byte) (*Blob, error) {
	payload, err := objects.ParseContent(data, objects.BlobType)
	if err != nil {
		return nil, err
	}

	return &Blob{
		data: payload,
		sha:  objects.NewObjectHash(data),
	}, nil
}

// Type returns the object kind
func (b *Blob) Type() objects.ObjectType {
	return objects.BlobType
}

// Content returns the raw file bytes
func (b *Blob) Content() ([]byte, error) {
	return b.data, nil
}

// Hash returns the identity of the blob
func (b *Blob) Hash() (objects.ObjectHash, error) {
	if b.sha != "" {
		return b.sha, nil
	}
	b.sha = objects.ComputeObjectHash(objects.BlobType, b.data)
	return b.sha, nil
}

// Size returns the payload size in bytes
func (b *Blob) Size() (int64, error) {
	return int64(len(b.data)), nil
}

// Serialize writes the blob in its canonical storage envelope
func (b *Blob) Serialize(w io.Writer) error {
	if _, err := w.Write(objects.CreateHeader(objects.BlobType, int64(len(b.data)))); err != nil {
		return fmt.Errorf("failed to write blob header: %w", err)
	}
	if _, err := w.Write(b.data); err != nil {
		return fmt.Errorf("failed to write blob content: %w", err)
	}
	return nil
}

// String returns a human-readable representation
func (b *Blob) String() string {
	hash, err := b.Hash()
	if err != nil {
		return fmt.Sprintf("Blob{size: %d, error: %v}", len(b.data), err)
	}
	return fmt.Sprintf("Blob{size: %d, hash: %s}", len(b.data), hash.Short())
}
