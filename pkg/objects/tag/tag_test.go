package tag

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
)

const targetSHA = objects.ObjectHash("c1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0")

func testTagger(t *testing.T) commit.Person {
	t.Helper()
	p, err := commit.NewPerson("Rel Eng", "rel@example.com", time.Unix(1700000000, 0).UTC())
	require.NoError(t, err)
	return p
}

func TestTagSerializeParseRoundTrip(t *testing.T) {
	original, err := NewTag(targetSHA, objects.CommitType, "v1.0.0", testTagger(t), "first stable release")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, original.Serialize(&buf))

	parsed, err := ParseTag(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, targetSHA, parsed.TargetSHA())
	assert.Equal(t, objects.CommitType, parsed.TargetType())
	assert.Equal(t, "v1.0.0", parsed.Name())
	assert.Equal(t, "Rel Eng", parsed.Tagger().Name)
	assert.Equal(t, "first stable release", parsed.Message())
}

func TestNewTagValidation(t *testing.T) {
	tagger := testTagger(t)

	_, err := NewTag("short", objects.CommitType, "v1", tagger, "")
	assert.Error(t, err)

	_, err = NewTag(targetSHA, objects.CommitType, "", tagger, "")
	assert.Error(t, err)

	_, err = NewTag(targetSHA, objects.CommitType, "has space", tagger, "")
	assert.Error(t, err)

	_, err = NewTag(targetSHA, objects.CommitType, "v1", commit.Person{}, "")
	assert.Error(t, err)
}

func TestParseTagRejectsMissingHeaders(t *testing.T) {
	payload := "object c1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0\ntype commit\n\nmsg"
	envelope := objects.WrapPayload(objects.TagType, []byte(payload))
	_, err := ParseTag(envelope)
	assert.Error(t, err)
}
