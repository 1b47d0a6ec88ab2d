package diff

import (
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/tree"
)

// ChangeKind classifies how a path differs between two snapshots
type ChangeKind int

const (
	// Added paths exist only in the new snapshot
	Added ChangeKind = iota

	// Removed paths exist only in the old snapshot
	Removed

	// Modified paths exist in both with different content or mode
	Modified

	// Unchanged paths are identical in both snapshots
	Unchanged
)

// String returns a short status label
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "A"
	case Removed:
		return "D"
	case Modified:
		return "M"
	case Unchanged:
		return "="
	default:
		return "?"
	}
}

// Change describes one path's difference between two tree snapshots. The
// SHA and mode of the missing side are zero values for Added and Removed.
type Change struct {
	Path    string
	Kind    ChangeKind
	OldSHA  objects.ObjectHash
	NewSHA  objects.ObjectHash
	OldMode tree.EntryMode
	NewMode tree.EntryMode
}

// EmptyTree is the sentinel for a missing snapshot: diffing against it
// reports every path on the other side as added or removed.
const EmptyTree = objects.ObjectHash("")

// CompareTrees diffs two tree snapshots by flattening both and walking the
// listings in parallel. Both listings come from the same canonical-order
// walk, so full-path comparison lines the sides up without extra sorting.
// Unchanged paths are not reported.
func CompareTrees(loader tree.Loader, oldRoot, newRoot objects.ObjectHash) ([]Change, error) {
	oldFlat, err := flattenOrEmpty(loader, oldRoot)
	if err != nil {
		return nil, err
	}
	newFlat, err := flattenOrEmpty(loader, newRoot)
	if err != nil {
		return nil, err
	}

	var changes []Change
	i, j := 0, 0

	for i < len(oldFlat) && j < len(newFlat) {
		oldEntry, newEntry := oldFlat[i], newFlat[j]

		switch {
		case oldEntry.Path < newEntry.Path:
			changes = append(changes, removed(oldEntry))
			i++
		case oldEntry.Path > newEntry.Path:
			changes = append(changes, added(newEntry))
			j++
		default:
			if oldEntry.Entry.SHA() != newEntry.Entry.SHA() || oldEntry.Entry.Mode() != newEntry.Entry.Mode() {
				changes = append(changes, modified(oldEntry, newEntry))
			}
			i++
			j++
		}
	}

	for ; i < len(oldFlat); i++ {
		changes = append(changes, removed(oldFlat[i]))
	}
	for ; j < len(newFlat); j++ {
		changes = append(changes, added(newFlat[j]))
	}

	return changes, nil
}

func flattenOrEmpty(loader tree.Loader, root objects.ObjectHash) ([]tree.FlatEntry, error) {
	if root == EmptyTree {
		return nil, nil
	}
	return tree.Flatten(loader, root)
}

func added(fe tree.FlatEntry) Change {
	return Change{
		Path:    fe.Path,
		Kind:    Added,
		NewSHA:  fe.Entry.SHA(),
		NewMode: fe.Entry.Mode(),
	}
}

func removed(fe tree.FlatEntry) Change {
	return Change{
		Path:    fe.Path,
		Kind:    Removed,
		OldSHA:  fe.Entry.SHA(),
		OldMode: fe.Entry.Mode(),
	}
}

func modified(oldFe, newFe tree.FlatEntry) Change {
	return Change{
		Path:    oldFe.Path,
		Kind:    Modified,
		OldSHA:  oldFe.Entry.SHA(),
		NewSHA:  newFe.Entry.SHA(),
		OldMode: oldFe.Entry.Mode(),
		NewMode: newFe.Entry.Mode(),
	}
}
