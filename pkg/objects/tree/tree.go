package tree

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/minigit-vcs/minigit/pkg/objects"
)

// Tree represents a directory snapshot.
//
// Tree Object Structure:
// ┌─────────────────────────────────────────────────────┐
// │ Header: "tree" SPACE size NULL                      │
// │ Entry 1: mode SPACE name NULL [20-byte SHA-1]       │
// │ Entry 2: mode SPACE name NULL [20-byte SHA-1]       │
// │ ...                                                 │
// └─────────────────────────────────────────────────────┘
//
// Entries are kept in canonical name order (subtrees compare with a
// trailing "/") so that trees built from the same logical content always
// encode to the same bytes and therefore the same identity, regardless of
// the order entries were supplied in.
type Tree struct {
	entries []*Entry
	sha     objects.ObjectHash
}

// NewTree creates a tree from the given entries, canonicalizing their order
func NewTree(entries []*Entry) *Tree {
	t := &Tree{entries: entries}
	t.sortEntries()
	return t
}

// ParseTree parses a tree object from its canonical envelope
func ParseTree(data []byte) (*Tree, error) {
	payload, err := objects.ParseContent(data, objects.TreeType)
	if err != nil {
		return nil, err
	}

	entries, err := parseEntries(payload)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		entries: entries,
		sha:     objects.NewObjectHash(data),
	}
	t.sortEntries()
	return t, nil
}

// Type returns the object kind
func (t *Tree) Type() objects.ObjectType {
	return objects.TreeType
}

// Content returns the serialized entries (payload without header)
func (t *Tree) Content() ([]byte, error) {
	return t.serializeContent()
}

// Hash returns the identity of the tree
func (t *Tree) Hash() (objects.ObjectHash, error) {
	if t.sha != "" {
		return t.sha, nil
	}

	payload, err := t.Content()
	if err != nil {
		return "", fmt.Errorf("failed to get content: %w", err)
	}

	t.sha = objects.ComputeObjectHash(objects.TreeType, payload)
	return t.sha, nil
}

// Size returns the payload size in bytes
func (t *Tree) Size() (int64, error) {
	payload, err := t.Content()
	if err != nil {
		return 0, err
	}
	return int64(len(payload)), nil
}

// Serialize writes the tree in its canonical storage envelope
func (t *Tree) Serialize(w io.Writer) error {
	payload, err := t.Content()
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	if _, err := w.Write(objects.CreateHeader(objects.TreeType, int64(len(payload)))); err != nil {
		return fmt.Errorf("failed to write tree header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write tree content: %w", err)
	}
	return nil
}

// String returns a human-readable representation
func (t *Tree) String() string {
	hash, err := t.Hash()
	if err != nil {
		return fmt.Sprintf("Tree{entries: %d, error: %v}", len(t.entries), err)
	}
	return fmt.Sprintf("Tree{entries: %d, hash: %s}", len(t.entries), hash.Short())
}

// Entries returns a copy of the tree entries in canonical order
func (t *Tree) Entries() []*Entry {
	entries := make([]*Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Find returns the entry with the given name, or nil
func (t *Tree) Find(name string) *Entry {
	for _, e := range t.entries {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// IsEmpty returns true if the tree has no entries
func (t *Tree) IsEmpty() bool {
	return len(t.entries) == 0
}

// sortEntries sorts the entries into canonical order
func (t *Tree) sortEntries() {
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].CompareTo(t.entries[j]) < 0
	})
}

// serializeContent serializes all entries into the tree payload
func (t *Tree) serializeContent() ([]byte, error) {
	if len(t.entries) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	for _, entry := range t.entries {
		serialized, err := entry.Serialize()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize tree entry: %w", err)
		}
		if _, err := buf.Write(serialized); err != nil {
			return nil, fmt.Errorf("failed to write serialized entry: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// parseEntries parses all entries from a tree payload
func parseEntries(payload []byte) ([]*Entry, error) {
	var entries []*Entry
	offset := 0

	for offset < len(payload) {
		entry, nextOffset, err := DeserializeEntry(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tree entry at offset %d: %w", offset, err)
		}
		entries = append(entries, entry)
		offset = nextOffset
	}

	return entries, nil
}
