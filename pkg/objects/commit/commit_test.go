package commit

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigit-vcs/minigit/pkg/objects"
)

const (
	treeSHA   = objects.ObjectHash("a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0")
	parentSHA = objects.ObjectHash("b1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0")
)

func testPerson(t *testing.T) Person {
	t.Helper()
	when := time.Unix(1700000000, 0).In(time.FixedZone("+0530", 5*3600+30*60))
	p, err := NewPerson("Asha Rao", "asha@example.com", when)
	require.NoError(t, err)
	return p
}

func buildCommit(t *testing.T, parents ...objects.ObjectHash) *Commit {
	t.Helper()
	b := NewBuilder().
		WithTree(treeSHA).
		WithAuthor(testPerson(t)).
		WithCommitter(testPerson(t)).
		WithMessage("add parser\n\nHandles the malformed-header case.")
	for _, p := range parents {
		b.WithParent(p)
	}
	c, err := b.Build()
	require.NoError(t, err)
	return c
}

func TestCommitContentLayout(t *testing.T) {
	c := buildCommit(t, parentSHA)

	content, err := c.Content()
	require.NoError(t, err)

	expected := "tree a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0\n" +
		"parent b1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0\n" +
		"author Asha Rao <asha@example.com> 1700000000 +0530\n" +
		"committer Asha Rao <asha@example.com> 1700000000 +0530\n" +
		"\n" +
		"add parser\n\nHandles the malformed-header case."
	assert.Equal(t, expected, string(content))
}

func TestCommitSerializeParseRoundTrip(t *testing.T) {
	original := buildCommit(t, parentSHA)

	var buf bytes.Buffer
	require.NoError(t, original.Serialize(&buf))

	parsed, err := ParseCommit(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, treeSHA, parsed.TreeSHA())
	assert.Equal(t, []objects.ObjectHash{parentSHA}, parsed.ParentSHAs())
	assert.Equal(t, "Asha Rao", parsed.Author().Name)
	assert.Equal(t, int64(1700000000), parsed.Committer().When.Unix())
	assert.Equal(t, original.Message(), parsed.Message())

	originalHash, err := original.Hash()
	require.NoError(t, err)
	parsedHash, err := parsed.Hash()
	require.NoError(t, err)
	assert.Equal(t, originalHash, parsedHash)
}

func TestRootAndMergeShape(t *testing.T) {
	root := buildCommit(t)
	assert.True(t, root.IsRoot())
	assert.False(t, root.IsMerge())
	assert.Equal(t, objects.ObjectHash(""), root.FirstParent())

	merge := buildCommit(t, parentSHA, treeSHA)
	assert.True(t, merge.IsMerge())
	assert.Equal(t, parentSHA, merge.FirstParent())
}

func TestBuilderValidation(t *testing.T) {
	_, err := NewBuilder().Build()
	assert.Error(t, err)

	_, err = NewBuilder().WithTree(treeSHA).WithAuthor(testPerson(t)).Build()
	assert.Error(t, err)

	_, err = NewBuilder().
		WithTree(treeSHA).
		WithAuthor(testPerson(t)).
		WithCommitter(testPerson(t)).
		WithMessage("   ").
		Build()
	assert.Error(t, err)
}

func TestParseCommitRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing tree", "author Asha <a@b> 1 +0000\ncommitter Asha <a@b> 1 +0000\n\nmsg"},
		{"bad tree sha", "tree nothex\n\nmsg"},
		{"unknown header", "tree a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0\nwhatever x\n\nmsg"},
		{"no separator", "tree a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope := objects.WrapPayload(objects.CommitType, []byte(tt.payload))
			_, err := ParseCommit(envelope)
			assert.Error(t, err)
		})
	}
}

func TestSummary(t *testing.T) {
	c := buildCommit(t)
	assert.Equal(t, "add parser", c.Summary())
}
