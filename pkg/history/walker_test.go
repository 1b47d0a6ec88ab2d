package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/blob"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
)

// memSource serves objects from memory for walker tests
type memSource map[objects.ObjectHash]objects.Object

func (m memSource) Get(_ context.Context, hash objects.ObjectHash) (objects.Object, error) {
	obj, ok := m[hash]
	if !ok {
		return nil, fmt.Errorf("object %s not found", hash)
	}
	return obj, nil
}

const fixtureTree = objects.ObjectHash("a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0")

// addCommit creates and stores a commit with the given timestamp and parents
func addCommit(t *testing.T, src memSource, msg string, when int64, parents ...objects.ObjectHash) objects.ObjectHash {
	t.Helper()

	person, personErr := commit.NewPerson("Walker", "w@example.com", time.Unix(when, 0).UTC())
	require.NoError(t, personErr)

	builder := commit.NewBuilder().
		WithTree(fixtureTree).
		WithAuthor(person).
		WithCommitter(person).
		WithMessage(msg)
	for _, p := range parents {
		builder.WithParent(p)
	}
	c, buildErr := builder.Build()
	require.NoError(t, buildErr)

	hash, hashErr := c.Hash()
	require.NoError(t, hashErr)
	src[hash] = c
	return hash
}

func messages(entries []Entry) []string {
	var msgs []string
	for _, e := range entries {
		msgs = append(msgs, e.Commit.Message())
	}
	return msgs
}

func TestWalkLinearChainNewestFirst(t *testing.T) {
	src := memSource{}
	c1 := addCommit(t, src, "first", 1000)
	c2 := addCommit(t, src, "second", 2000, c1)
	c3 := addCommit(t, src, "third", 3000, c2)

	entries, walkErr := NewWalker(src).Collect(context.Background(), []objects.ObjectHash{c3}, 0)
	require.NoError(t, walkErr)
	assert.Equal(t, []string{"third", "second", "first"}, messages(entries))
}

func TestWalkMergeVisitsEachCommitOnce(t *testing.T) {
	src := memSource{}
	base := addCommit(t, src, "base", 1000)
	left := addCommit(t, src, "left", 2000, base)
	right := addCommit(t, src, "right", 2500, base)
	merge := addCommit(t, src, "merge", 3000, left, right)

	entries, walkErr := NewWalker(src).Collect(context.Background(), []objects.ObjectHash{merge}, 0)
	require.NoError(t, walkErr)
	assert.Equal(t, []string{"merge", "right", "left", "base"}, messages(entries))
}

func TestWalkEmitsChildrenBeforeParentDespiteClockSkew(t *testing.T) {
	src := memSource{}
	// The parent's clock is ahead of its child's.
	parent := addCommit(t, src, "parent", 5000)
	child := addCommit(t, src, "child", 1000, parent)

	entries, walkErr := NewWalker(src).Collect(context.Background(), []objects.ObjectHash{child}, 0)
	require.NoError(t, walkErr)
	assert.Equal(t, []string{"child", "parent"}, messages(entries))
}

func TestWalkOverlappingStarts(t *testing.T) {
	src := memSource{}
	c1 := addCommit(t, src, "first", 1000)
	c2 := addCommit(t, src, "second", 2000, c1)
	c3 := addCommit(t, src, "third", 3000, c2)

	entries, walkErr := NewWalker(src).Collect(context.Background(),
		[]objects.ObjectHash{c3, c2, c3}, 0)
	require.NoError(t, walkErr)
	assert.Equal(t, []string{"third", "second", "first"}, messages(entries))
}

func TestWalkLimit(t *testing.T) {
	src := memSource{}
	c1 := addCommit(t, src, "first", 1000)
	c2 := addCommit(t, src, "second", 2000, c1)
	c3 := addCommit(t, src, "third", 3000, c2)

	entries, walkErr := NewWalker(src).Collect(context.Background(), []objects.ObjectHash{c3}, 2)
	require.NoError(t, walkErr)
	assert.Equal(t, []string{"third", "second"}, messages(entries))
}

func TestWalkStopSentinel(t *testing.T) {
	src := memSource{}
	c1 := addCommit(t, src, "first", 1000)
	c2 := addCommit(t, src, "second", 2000, c1)

	var seen int
	walkErr := NewWalker(src).Walk(context.Background(), []objects.ObjectHash{c2}, func(Entry) error {
		seen++
		return ErrStopWalk
	})
	require.NoError(t, walkErr)
	assert.Equal(t, 1, seen)
}

func TestWalkEqualTimestampsDeterministic(t *testing.T) {
	src := memSource{}
	base := addCommit(t, src, "base", 1000)
	left := addCommit(t, src, "left", 2000, base)
	right := addCommit(t, src, "right", 2000, base)
	merge := addCommit(t, src, "merge", 3000, left, right)

	first, err1 := NewWalker(src).Collect(context.Background(), []objects.ObjectHash{merge}, 0)
	require.NoError(t, err1)
	second, err2 := NewWalker(src).Collect(context.Background(), []objects.ObjectHash{merge}, 0)
	require.NoError(t, err2)

	assert.Equal(t, messages(first), messages(second))
	assert.Equal(t, "merge", first[0].Commit.Message())
	assert.Equal(t, "base", first[len(first)-1].Commit.Message())
}

func TestWalkNonCommitStartFails(t *testing.T) {
	src := memSource{}
	b := blob.NewBlob([]byte("not a commit"))
	hash, hashErr := b.Hash()
	require.NoError(t, hashErr)
	src[hash] = b

	_, walkErr := NewWalker(src).Collect(context.Background(), []objects.ObjectHash{hash}, 0)
	assert.Error(t, walkErr)
}
