package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/common/fileops"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/tree"
	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

const pkgName = "index"

// Entry is one staged path: the blob identity and mode recorded for it
type Entry struct {
	Mode tree.EntryMode
	SHA  objects.ObjectHash
	Path mgpath.RelativePath
}

// Index is the staging area between the working files and the next snapshot.
//
// On-disk format, one entry per line, sorted by path:
//
//	<mode> <sha> <path>
//
// The format is line-oriented text rather than a packed binary layout: entry
// counts here stay small and a corrupt index must be inspectable with a
// pager.
type Index struct {
	entries map[mgpath.RelativePath]Entry
	path    mgpath.AbsolutePath
}

// Load reads the index file. A missing file yields an empty index, not an
// error, so a fresh repository needs no initialization step.
func Load(minigit mgpath.MiniGitPath) (*Index, error) {
	const op = "load"

	idx := &Index{
		entries: make(map[mgpath.RelativePath]Entry),
		path:    minigit.IndexPath().ToAbsolutePath(),
	}

	content, readErr := fileops.ReadString(idx.path)
	if readErr != nil {
		return nil, fmt.Errorf("read index: %w", readErr)
	}
	if content == "" {
		return idx, nil
	}

	for lineNo, line := range strings.Split(content, "\n") {
		entry, parseErr := parseLine(line)
		if parseErr != nil {
			return nil, err.New(pkgName, err.CodeInvalidFormat, op,
				fmt.Sprintf("malformed index line %d", lineNo+1), parseErr)
		}
		idx.entries[entry.Path] = entry
	}

	return idx, nil
}

// Save writes the index atomically, entries sorted by path
func (idx *Index) Save() error {
	var sb strings.Builder
	for _, entry := range idx.Entries() {
		fmt.Fprintf(&sb, "%s %s %s\n", entry.Mode, entry.SHA, entry.Path)
	}

	if writeErr := fileops.AtomicWrite(idx.path, []byte(sb.String()), 0644); writeErr != nil {
		return fmt.Errorf("write index: %w", writeErr)
	}
	return nil
}

// Set stages a path, replacing any previous entry for it
func (idx *Index) Set(entry Entry) {
	entry.Path = entry.Path.Normalize()
	idx.entries[entry.Path] = entry
}

// Remove unstages a path. Removing an unstaged path is a no-op.
func (idx *Index) Remove(path mgpath.RelativePath) {
	delete(idx.entries, path.Normalize())
}

// Get returns the entry for a path, if staged
func (idx *Index) Get(path mgpath.RelativePath) (Entry, bool) {
	entry, ok := idx.entries[path.Normalize()]
	return entry, ok
}

// Entries returns all staged entries sorted by path
func (idx *Index) Entries() []Entry {
	entries := make([]Entry, 0, len(idx.entries))
	for _, entry := range idx.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// Len returns the number of staged entries
func (idx *Index) Len() int {
	return len(idx.entries)
}

// IsEmpty reports whether nothing is staged
func (idx *Index) IsEmpty() bool {
	return len(idx.entries) == 0
}

func parseLine(line string) (Entry, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("expected \"mode sha path\", got %q", line)
	}

	mode := tree.EntryMode(parts[0])
	sha, shaErr := objects.NewObjectHashFromString(parts[1])
	if shaErr != nil {
		return Entry{}, shaErr
	}

	path := mgpath.RelativePath(parts[2])
	if !mgpath.IsPathSafe(parts[2]) {
		return Entry{}, fmt.Errorf("unsafe path %q", parts[2])
	}

	return Entry{Mode: mode, SHA: sha, Path: path.Normalize()}, nil
}
