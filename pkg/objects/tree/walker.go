package tree

import (
	"fmt"

	"github.com/minigit-vcs/minigit/pkg/objects"
)

// Loader resolves a tree identity to its parsed object. It is the walker's
// only view of storage, which keeps this package free of a store dependency
// and lets tests drive the walker from an in-memory map.
//
// Implementations must fail with the store's WrongKind error when the
// identity names a non-tree object, and NotFound when it names nothing.
type Loader interface {
	LoadTree(sha objects.ObjectHash) (*Tree, error)
}

// FlatEntry is one element of a flattened tree listing: the entry together
// with its full path from the walk root.
type FlatEntry struct {
	Path  string
	Entry *Entry
}

// Walk expands the tree at root depth-first, invoking fn for every blob
// entry with its accumulated path. Subtree entries are descended into, not
// emitted. Within each level entries are visited in canonical order, so the
// emitted sequence is stable and reproducible for identical tree content.
func Walk(loader Loader, root objects.ObjectHash, fn func(FlatEntry) error) error {
	return walk(loader, root, "", fn)
}

func walk(loader Loader, sha objects.ObjectHash, prefix string, fn func(FlatEntry) error) error {
	t, err := loader.LoadTree(sha)
	if err != nil {
		return err
	}

	for _, entry := range t.Entries() {
		path := entry.Name()
		if prefix != "" {
			path = prefix + "/" + entry.Name()
		}

		if entry.IsSubtree() {
			if err := walk(loader, entry.SHA(), path, fn); err != nil {
				return err
			}
			continue
		}

		if err := fn(FlatEntry{Path: path, Entry: entry}); err != nil {
			return err
		}
	}

	return nil
}

// Flatten collects the full recursive listing of the tree at root.
func Flatten(loader Loader, root objects.ObjectHash) ([]FlatEntry, error) {
	var flat []FlatEntry
	err := Walk(loader, root, func(fe FlatEntry) error {
		flat = append(flat, fe)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("flatten tree %s: %w", root.Short(), err)
	}
	return flat, nil
}

// List returns the single-level listing of the tree at root: the same
// traversal restricted to depth one, with subtree entries included.
func List(loader Loader, root objects.ObjectHash) ([]*Entry, error) {
	t, err := loader.LoadTree(root)
	if err != nil {
		return nil, err
	}
	return t.Entries(), nil
}
