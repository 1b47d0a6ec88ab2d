package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/blob"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
	"github.com/minigit-vcs/minigit/pkg/objects/tree"
	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

func newTestStore(t *testing.T) (*FileObjectStore, mgpath.MiniGitPath) {
	t.Helper()
	root, pathErr := mgpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, pathErr)

	minigit := root.MiniGitPath()
	require.NoError(t, os.MkdirAll(minigit.ObjectsPath().String(), 0755))

	return NewFileObjectStore(minigit), minigit
}

func TestPutGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	b := blob.NewBlob([]byte("hello\n"))
	hash, putErr := s.Put(ctx, b)
	require.NoError(t, putErr)
	assert.Equal(t, objects.ObjectHash("ce013625030ba8dba906f756967f9e9ca394464a"), hash)

	obj, getErr := s.Get(ctx, hash)
	require.NoError(t, getErr)
	assert.Equal(t, objects.BlobType, obj.Type())

	content, contentErr := obj.Content()
	require.NoError(t, contentErr)
	assert.Equal(t, "hello\n", string(content))
}

func TestPutIsIdempotent(t *testing.T) {
	s, minigit := newTestStore(t)
	ctx := context.Background()

	b := blob.NewBlob([]byte("same content"))
	hash1, putErr := s.Put(ctx, b)
	require.NoError(t, putErr)

	objectFile := minigit.ObjectFilePath(hash1.String()).String()
	before, statErr := os.Stat(objectFile)
	require.NoError(t, statErr)

	time.Sleep(10 * time.Millisecond)

	hash2, putErr := s.Put(ctx, blob.NewBlob([]byte("same content")))
	require.NoError(t, putErr)
	assert.Equal(t, hash1, hash2)

	after, statErr := os.Stat(objectFile)
	require.NoError(t, statErr)
	assert.Equal(t, before.ModTime(), after.ModTime(), "existing object must not be rewritten")
}

func TestGetMissingObject(t *testing.T) {
	s, _ := newTestStore(t)

	_, getErr := s.Get(context.Background(), objects.ObjectHash(strings.Repeat("ab", 20)))
	require.Error(t, getErr)
	assert.True(t, err.IsCode(getErr, err.CodeNotFound))
}

func TestGetDetectsCorruption(t *testing.T) {
	s, minigit := newTestStore(t)
	ctx := context.Background()

	hash, putErr := s.Put(ctx, blob.NewBlob([]byte("pristine")))
	require.NoError(t, putErr)

	// Replace the stored file with a different, validly compressed object.
	other, otherErr := s.Put(ctx, blob.NewBlob([]byte("tampered")))
	require.NoError(t, otherErr)

	victim := minigit.ObjectFilePath(hash.String()).String()
	replacement, readErr := os.ReadFile(minigit.ObjectFilePath(other.String()).String())
	require.NoError(t, readErr)
	require.NoError(t, os.Chmod(victim, 0644))
	require.NoError(t, os.WriteFile(victim, replacement, 0644))

	_, getErr := s.Get(ctx, hash)
	require.Error(t, getErr)
	assert.True(t, err.IsCode(getErr, err.CodeCorrupt))
}

func TestGetRejectsInvalidZlib(t *testing.T) {
	s, minigit := newTestStore(t)
	ctx := context.Background()

	hash, putErr := s.Put(ctx, blob.NewBlob([]byte("data")))
	require.NoError(t, putErr)

	victim := minigit.ObjectFilePath(hash.String()).String()
	require.NoError(t, os.Chmod(victim, 0644))
	require.NoError(t, os.WriteFile(victim, []byte("not zlib at all"), 0644))

	_, getErr := s.Get(ctx, hash)
	require.Error(t, getErr)
	assert.True(t, err.IsCode(getErr, err.CodeCorrupt))
}

func TestStoreAllKinds(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	blobHash, blobErr := s.Put(ctx, blob.NewBlob([]byte("file body\n")))
	require.NoError(t, blobErr)

	entry, entryErr := tree.NewEntry(tree.ModeRegular, "file.txt", blobHash)
	require.NoError(t, entryErr)
	treeHash, treeErr := s.Put(ctx, tree.NewTree([]*tree.Entry{entry}))
	require.NoError(t, treeErr)

	person, personErr := commit.NewPerson("Tester", "t@example.com", time.Unix(1700000000, 0).UTC())
	require.NoError(t, personErr)
	c, commitErr := commit.NewBuilder().
		WithTree(treeHash).
		WithAuthor(person).
		WithCommitter(person).
		WithMessage("snapshot").
		Build()
	require.NoError(t, commitErr)
	commitHash, putErr := s.Put(ctx, c)
	require.NoError(t, putErr)

	loaded, loadErr := LoadCommit(ctx, s, commitHash)
	require.NoError(t, loadErr)
	assert.Equal(t, treeHash, loaded.TreeSHA())

	loadedTree, loadTreeErr := LoadTree(ctx, s, treeHash)
	require.NoError(t, loadTreeErr)
	assert.NotNil(t, loadedTree.Find("file.txt"))
}

func TestLoadersRejectWrongKind(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	blobHash, putErr := s.Put(ctx, blob.NewBlob([]byte("not a tree")))
	require.NoError(t, putErr)

	_, loadErr := LoadTree(ctx, s, blobHash)
	require.Error(t, loadErr)
	assert.True(t, err.IsCode(loadErr, err.CodeWrongKind))

	_, loadErr = LoadCommit(ctx, s, blobHash)
	require.Error(t, loadErr)
	assert.True(t, err.IsCode(loadErr, err.CodeWrongKind))
}

// seedObjectFile plants a raw object file so prefix scanning can be tested
// against crafted identities.
func seedObjectFile(t *testing.T, minigit mgpath.MiniGitPath, hexName string) {
	t.Helper()
	require.Len(t, hexName, objects.HashLength)
	dir := filepath.Join(minigit.ObjectsPath().String(), hexName[:2])
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, hexName[2:]), []byte("x"), 0444))
}

func TestResolvePrefix(t *testing.T) {
	s, minigit := newTestStore(t)
	ctx := context.Background()

	first := "ab12" + strings.Repeat("0", 36)
	second := "ab12" + strings.Repeat("1", 36)
	third := "cd34" + strings.Repeat("2", 36)
	seedObjectFile(t, minigit, first)
	seedObjectFile(t, minigit, second)
	seedObjectFile(t, minigit, third)

	t.Run("unique prefix resolves", func(t *testing.T) {
		hash, resolveErr := s.ResolvePrefix(ctx, "cd34")
		require.NoError(t, resolveErr)
		assert.Equal(t, objects.ObjectHash(third), hash)
	})

	t.Run("longer unique prefix resolves", func(t *testing.T) {
		hash, resolveErr := s.ResolvePrefix(ctx, first[:8])
		require.NoError(t, resolveErr)
		assert.Equal(t, objects.ObjectHash(first), hash)
	})

	t.Run("ambiguous prefix fails with match set", func(t *testing.T) {
		_, resolveErr := s.ResolvePrefix(ctx, "ab12")
		require.Error(t, resolveErr)
		assert.True(t, err.IsCode(resolveErr, err.CodeAmbiguousPrefix))
		assert.Contains(t, resolveErr.Error(), first)
		assert.Contains(t, resolveErr.Error(), second)
	})

	t.Run("unknown prefix fails", func(t *testing.T) {
		_, resolveErr := s.ResolvePrefix(ctx, "ffff")
		require.Error(t, resolveErr)
		assert.True(t, err.IsCode(resolveErr, err.CodeNotFound))
	})

	t.Run("too short prefix rejected", func(t *testing.T) {
		_, resolveErr := s.ResolvePrefix(ctx, "ab1")
		require.Error(t, resolveErr)
		assert.True(t, err.IsCode(resolveErr, err.CodeInvalidInput))
	})

	t.Run("non-hex prefix rejected", func(t *testing.T) {
		_, resolveErr := s.ResolvePrefix(ctx, "zzzz")
		require.Error(t, resolveErr)
		assert.True(t, err.IsCode(resolveErr, err.CodeInvalidInput))
	})

	t.Run("full identity resolves to itself", func(t *testing.T) {
		hash, resolveErr := s.ResolvePrefix(ctx, first)
		require.NoError(t, resolveErr)
		assert.Equal(t, objects.ObjectHash(first), hash)
	})

	t.Run("uppercase prefix matches", func(t *testing.T) {
		hash, resolveErr := s.ResolvePrefix(ctx, "CD34")
		require.NoError(t, resolveErr)
		assert.Equal(t, objects.ObjectHash(third), hash)
	})
}

func TestHas(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	hash, putErr := s.Put(ctx, blob.NewBlob([]byte("exists")))
	require.NoError(t, putErr)

	exists, hasErr := s.Has(ctx, hash)
	require.NoError(t, hasErr)
	assert.True(t, exists)

	exists, hasErr = s.Has(ctx, objects.ObjectHash(strings.Repeat("0", 40)))
	require.NoError(t, hasErr)
	assert.False(t, exists)
}
