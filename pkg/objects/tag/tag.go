package tag

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
)

// Tag is an annotated tag: a named, authored pointer at another object,
// almost always a commit marking a release.
//
// Tag Payload Structure:
// ┌──────────────────────────────────────────────┐
// │ object <target-sha>                          │
// │ type <target-kind>                           │
// │ tag <tag-name>                               │
// │ tagger Name <email> ts +HHMM                 │
// │                                              │
// │ tag message                                  │
// └──────────────────────────────────────────────┘
type Tag struct {
	targetSHA  objects.ObjectHash
	targetType objects.ObjectType
	name       string
	tagger     commit.Person
	message    string
	sha        objects.ObjectHash
}

const (
	objectHeader = "object"
	typeHeader   = "type"
	tagHeader    = "tag"
	taggerHeader = "tagger"
)

// NewTag creates an annotated tag pointing at the given object
func NewTag(target objects.ObjectHash, targetType objects.ObjectType, name string, tagger commit.Person, message string) (*Tag, error) {
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tag target: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("tag name cannot be empty")
	}
	if strings.ContainsAny(name, " \n") {
		return nil, fmt.Errorf("invalid characters in tag name: %q", name)
	}
	if tagger.Name == "" {
		return nil, fmt.Errorf("tag requires a tagger")
	}

	return &Tag{
		targetSHA:  target,
		targetType: targetType,
		name:       name,
		tagger:     tagger,
		message:    message,
	}, nil
}

// ParseTag parses a tag object from its canonical envelope
func ParseTag(data []byte) (*Tag, error) {
	payload, err := objects.ParseContent(data, objects.TagType)
	if err != nil {
		return nil, err
	}

	t, err := parsePayload(payload)
	if err != nil {
		return nil, err
	}

	t.sha = objects.NewObjectHash(data)
	return t, nil
}

// Type returns the object kind
func (t *Tag) Type() objects.ObjectType {
	return objects.TagType
}

// Content returns the serialized tag text (payload without header)
func (t *Tag) Content() ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s\n", objectHeader, t.targetSHA)
	fmt.Fprintf(&buf, "%s %s\n", typeHeader, t.targetType)
	fmt.Fprintf(&buf, "%s %s\n", tagHeader, t.name)
	fmt.Fprintf(&buf, "%s %s\n", taggerHeader, t.tagger.Format())
	buf.WriteByte('\n')
	buf.WriteString(t.message)

	return buf.Bytes(), nil
}

// Hash returns the identity of the tag
func (t *Tag) Hash() (objects.ObjectHash, error) {
	if t.sha != "" {
		return t.sha, nil
	}

	payload, err := t.Content()
	if err != nil {
		return "", fmt.Errorf("failed to get content: %w", err)
	}

	t.sha = objects.ComputeObjectHash(objects.TagType, payload)
	return t.sha, nil
}

// Size returns the payload size in bytes
func (t *Tag) Size() (int64, error) {
	payload, err := t.Content()
	if err != nil {
		return 0, err
	}
	return int64(len(payload)), nil
}

// Serialize writes the tag in its canonical storage envelope
func (t *Tag) Serialize(w io.Writer) error {
	payload, err := t.Content()
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	if _, err := w.Write(objects.CreateHeader(objects.TagType, int64(len(payload)))); err != nil {
		return fmt.Errorf("failed to write tag header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write tag content: %w", err)
	}
	return nil
}

// String returns a human-readable representation
func (t *Tag) String() string {
	return fmt.Sprintf("Tag{name: %s, target: %s}", t.name, t.targetSHA.Short())
}

// TargetSHA returns the identity the tag points at
func (t *Tag) TargetSHA() objects.ObjectHash {
	return t.targetSHA
}

// TargetType returns the kind of the tagged object
func (t *Tag) TargetType() objects.ObjectType {
	return t.targetType
}

// Name returns the tag name
func (t *Tag) Name() string {
	return t.name
}

// Tagger returns who created the tag
func (t *Tag) Tagger() commit.Person {
	return t.tagger
}

// Message returns the tag message
func (t *Tag) Message() string {
	return t.message
}

func parsePayload(payload []byte) (*Tag, error) {
	t := &Tag{}
	rest := string(payload)

	for {
		line, remainder, found := strings.Cut(rest, "\n")
		if !found {
			return nil, fmt.Errorf("malformed tag: missing message separator")
		}
		rest = remainder

		if line == "" {
			break
		}

		key, value, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("malformed tag header line: %q", line)
		}

		switch key {
		case objectHeader:
			sha := objects.ObjectHash(value)
			if err := sha.Validate(); err != nil {
				return nil, fmt.Errorf("malformed object header: %w", err)
			}
			t.targetSHA = sha
		case typeHeader:
			targetType, err := objects.ParseObjectType(value)
			if err != nil {
				return nil, fmt.Errorf("malformed type header: %w", err)
			}
			t.targetType = targetType
		case tagHeader:
			t.name = value
		case taggerHeader:
			person, err := commit.ParsePerson(value)
			if err != nil {
				return nil, fmt.Errorf("malformed tagger header: %w", err)
			}
			t.tagger = person
		default:
			return nil, fmt.Errorf("unknown tag header: %q", key)
		}
	}

	if t.targetSHA == "" {
		return nil, fmt.Errorf("malformed tag: missing object header")
	}
	if t.targetType == "" {
		return nil, fmt.Errorf("malformed tag: missing type header")
	}
	if t.name == "" {
		return nil, fmt.Errorf("malformed tag: missing tag header")
	}
	if t.tagger.Name == "" {
		return nil, fmt.Errorf("malformed tag: missing tagger header")
	}

	t.message = rest
	return t, nil
}
