package refs

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

var (
	hashA = objects.ObjectHash(strings.Repeat("a1", 20))
	hashB = objects.ObjectHash(strings.Repeat("b2", 20))
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root, pathErr := mgpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, pathErr)

	minigit := root.MiniGitPath()
	require.NoError(t, os.MkdirAll(minigit.RefsPath().String(), 0755))

	return NewStore(minigit)
}

func TestWriteAndReadDirectRef(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteHash("refs/heads/main", hashA))

	value, readErr := s.Read("refs/heads/main")
	require.NoError(t, readErr)
	assert.False(t, value.IsSymbolic())
	assert.Equal(t, hashA, value.Hash)
}

func TestWriteAndReadSymbolicRef(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteHash("refs/heads/main", hashA))
	require.NoError(t, s.WriteSymbolic("HEAD", "refs/heads/main"))

	value, readErr := s.Read("HEAD")
	require.NoError(t, readErr)
	assert.True(t, value.IsSymbolic())
	assert.Equal(t, "refs/heads/main", value.Target)
}

func TestResolveFollowsChain(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteHash("refs/heads/main", hashA))
	require.NoError(t, s.WriteSymbolic("refs/heads/alias", "refs/heads/main"))
	require.NoError(t, s.WriteSymbolic("HEAD", "refs/heads/alias"))

	hash, resolveErr := s.Resolve("HEAD")
	require.NoError(t, resolveErr)
	assert.Equal(t, hashA, hash)
}

func TestResolveCycleFails(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteSymbolic("refs/heads/ping", "refs/heads/pong"))
	require.NoError(t, s.WriteSymbolic("refs/heads/pong", "refs/heads/ping"))

	_, resolveErr := s.Resolve("refs/heads/ping")
	require.Error(t, resolveErr)
	assert.True(t, err.IsCode(resolveErr, err.CodeCyclicReference))
}

func TestResolveDeepChainWithinBound(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteHash("refs/heads/target", hashB))
	prev := "refs/heads/target"
	for i := 0; i < MaxRefDepth-1; i++ {
		name := "refs/heads/hop" + string(rune('a'+i))
		require.NoError(t, s.WriteSymbolic(name, prev))
		prev = name
	}

	hash, resolveErr := s.Resolve(prev)
	require.NoError(t, resolveErr)
	assert.Equal(t, hashB, hash)
}

func TestReadMissingRef(t *testing.T) {
	s := newTestStore(t)

	_, readErr := s.Read("refs/heads/ghost")
	require.Error(t, readErr)
	assert.True(t, err.IsCode(readErr, err.CodeNotFound))
}

func TestReadMalformedRef(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteHash("refs/heads/main", hashA))
	path := s.refPath("refs/heads/main")
	require.NoError(t, os.WriteFile(path.String(), []byte("gibberish\n"), 0644))

	_, readErr := s.Read("refs/heads/main")
	require.Error(t, readErr)
	assert.True(t, err.IsCode(readErr, err.CodeInvalidFormat))
}

func TestValidateNameRejectsEscapes(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"", "objects", "refs/../HEAD", "/etc/passwd", "refs/heads/", "refs//x"} {
		writeErr := s.WriteHash(name, hashA)
		assert.Error(t, writeErr, "name %q", name)
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteHash("refs/heads/main", hashA))
	require.NoError(t, s.WriteHash("refs/heads/dev", hashB))
	require.NoError(t, s.WriteHash("refs/tags/v1.0", hashA))

	all, listErr := s.List("")
	require.NoError(t, listErr)
	require.Len(t, all, 3)
	assert.Equal(t, "refs/heads/dev", all[0].Name)
	assert.Equal(t, "refs/heads/main", all[1].Name)
	assert.Equal(t, "refs/tags/v1.0", all[2].Name)
	assert.Equal(t, hashB, all[0].Hash)

	heads, headsErr := s.List(mgpath.HeadsDir)
	require.NoError(t, headsErr)
	require.Len(t, heads, 2)
	assert.Equal(t, "refs/heads/dev", heads[0].Name)
}

func TestListEmptyNamespace(t *testing.T) {
	s := newTestStore(t)

	all, listErr := s.List("")
	require.NoError(t, listErr)
	assert.Empty(t, all)
}

func TestCurrentBranch(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetHEADToBranch("main"))
	branch, onBranch, branchErr := s.CurrentBranch()
	require.NoError(t, branchErr)
	assert.True(t, onBranch)
	assert.Equal(t, "main", branch)

	require.NoError(t, s.WriteHash("HEAD", hashA))
	_, onBranch, branchErr = s.CurrentBranch()
	require.NoError(t, branchErr)
	assert.False(t, onBranch)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteHash("refs/heads/doomed", hashA))
	require.NoError(t, s.Delete("refs/heads/doomed"))

	exists, existsErr := s.Exists("refs/heads/doomed")
	require.NoError(t, existsErr)
	assert.False(t, exists)

	// Deleting again is not an error.
	require.NoError(t, s.Delete("refs/heads/doomed"))
}
