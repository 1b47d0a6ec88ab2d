package tree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigit-vcs/minigit/pkg/objects"
)

// mapLoader serves trees from memory for walker tests
type mapLoader map[objects.ObjectHash]*Tree

func (m mapLoader) LoadTree(sha objects.ObjectHash) (*Tree, error) {
	t, ok := m[sha]
	if !ok {
		return nil, fmt.Errorf("tree %s not found", sha)
	}
	return t, nil
}

func hashOf(t *testing.T, tr *Tree) objects.ObjectHash {
	t.Helper()
	h, err := tr.Hash()
	require.NoError(t, err)
	return h
}

func TestFlattenNestedTrees(t *testing.T) {
	loader := mapLoader{}

	inner := NewTree([]*Entry{
		mustEntry(t, ModeRegular, "util.go"),
		mustEntry(t, ModeRegular, "api.go"),
	})
	innerHash := hashOf(t, inner)
	loader[innerHash] = inner

	srcEntry, err := NewEntry(ModeDirectory, "src", innerHash)
	require.NoError(t, err)

	root := NewTree([]*Entry{
		mustEntry(t, ModeRegular, "README.md"),
		srcEntry,
		mustEntry(t, ModeRegular, "main.go"),
	})
	rootHash := hashOf(t, root)
	loader[rootHash] = root

	flat, err := Flatten(loader, rootHash)
	require.NoError(t, err)

	paths := []string{}
	for _, fe := range flat {
		paths = append(paths, fe.Path)
	}
	assert.Equal(t, []string{"README.md", "main.go", "src/api.go", "src/util.go"}, paths)
}

func TestWalkEmitsBlobsOnly(t *testing.T) {
	loader := mapLoader{}

	inner := NewTree([]*Entry{mustEntry(t, ModeRegular, "leaf.txt")})
	innerHash := hashOf(t, inner)
	loader[innerHash] = inner

	dirEntry, err := NewEntry(ModeDirectory, "dir", innerHash)
	require.NoError(t, err)

	root := NewTree([]*Entry{dirEntry})
	rootHash := hashOf(t, root)
	loader[rootHash] = root

	var kinds []objects.ObjectType
	walkErr := Walk(loader, rootHash, func(fe FlatEntry) error {
		kinds = append(kinds, fe.Entry.TargetType())
		return nil
	})
	require.NoError(t, walkErr)
	assert.Equal(t, []objects.ObjectType{objects.BlobType}, kinds)
}

func TestWalkPropagatesCallbackError(t *testing.T) {
	loader := mapLoader{}
	root := NewTree([]*Entry{mustEntry(t, ModeRegular, "a.txt")})
	rootHash := hashOf(t, root)
	loader[rootHash] = root

	sentinel := fmt.Errorf("boom")
	walkErr := Walk(loader, rootHash, func(FlatEntry) error {
		return sentinel
	})
	assert.ErrorIs(t, walkErr, sentinel)
}

func TestWalkMissingSubtreeFails(t *testing.T) {
	loader := mapLoader{}

	dangling, err := NewEntry(ModeDirectory, "ghost", testSHA)
	require.NoError(t, err)

	root := NewTree([]*Entry{dangling})
	rootHash := hashOf(t, root)
	loader[rootHash] = root

	walkErr := Walk(loader, rootHash, func(FlatEntry) error { return nil })
	assert.Error(t, walkErr)
}

func TestListSingleLevel(t *testing.T) {
	loader := mapLoader{}

	inner := NewTree([]*Entry{mustEntry(t, ModeRegular, "hidden.txt")})
	innerHash := hashOf(t, inner)
	loader[innerHash] = inner

	dirEntry, err := NewEntry(ModeDirectory, "dir", innerHash)
	require.NoError(t, err)

	root := NewTree([]*Entry{dirEntry, mustEntry(t, ModeRegular, "top.txt")})
	rootHash := hashOf(t, root)
	loader[rootHash] = root

	entries, listErr := List(loader, rootHash)
	require.NoError(t, listErr)
	require.Len(t, entries, 2)
	assert.Equal(t, "dir", entries[0].Name())
	assert.Equal(t, "top.txt", entries[1].Name())
}
