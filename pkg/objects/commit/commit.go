package commit

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/minigit-vcs/minigit/pkg/objects"
)

// Commit records one snapshot of the project together with its ancestry.
//
// Commit Payload Structure:
// ┌──────────────────────────────────────────────┐
// │ tree <tree-sha>                              │
// │ parent <parent-sha>        (zero or more)    │
// │ author Name <email> ts +HHMM                 │
// │ committer Name <email> ts +HHMM              │
// │                                              │
// │ commit message                               │
// └──────────────────────────────────────────────┘
//
// Parent lines appear in order: a root commit has none, an ordinary commit
// has one, a merge has two or more. The first parent is the line of history
// the commit was made on.
type Commit struct {
	treeSHA    objects.ObjectHash
	parentSHAs []objects.ObjectHash
	author     Person
	committer  Person
	message    string
	sha        objects.ObjectHash
}

const (
	treeHeader      = "tree"
	parentHeader    = "parent"
	authorHeader    = "author"
	committerHeader = "committer"
)

// Builder assembles a commit field by field before sealing it
type Builder struct {
	commit *Commit
	errs   []error
}

// NewBuilder creates an empty commit builder
func NewBuilder() *Builder {
	return &Builder{commit: &Commit{}}
}

// WithTree sets the root tree the commit snapshots
func (b *Builder) WithTree(sha objects.ObjectHash) *Builder {
	if err := sha.Validate(); err != nil {
		b.errs = append(b.errs, fmt.Errorf("invalid tree sha: %w", err))
		return b
	}
	b.commit.treeSHA = sha
	return b
}

// WithParent appends a parent, preserving order
func (b *Builder) WithParent(sha objects.ObjectHash) *Builder {
	if err := sha.Validate(); err != nil {
		b.errs = append(b.errs, fmt.Errorf("invalid parent sha: %w", err))
		return b
	}
	b.commit.parentSHAs = append(b.commit.parentSHAs, sha)
	return b
}

// WithAuthor sets who wrote the change
func (b *Builder) WithAuthor(author Person) *Builder {
	b.commit.author = author
	return b
}

// WithCommitter sets who recorded the change
func (b *Builder) WithCommitter(committer Person) *Builder {
	b.commit.committer = committer
	return b
}

// WithMessage sets the commit message
func (b *Builder) WithMessage(message string) *Builder {
	b.commit.message = message
	return b
}

// Build validates the assembled commit and returns it
func (b *Builder) Build() (*Commit, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if b.commit.treeSHA == "" {
		return nil, fmt.Errorf("commit requires a tree")
	}
	if b.commit.author.Name == "" {
		return nil, fmt.Errorf("commit requires an author")
	}
	if b.commit.committer.Name == "" {
		return nil, fmt.Errorf("commit requires a committer")
	}
	if strings.TrimSpace(b.commit.message) == "" {
		return nil, fmt.Errorf("commit requires a message")
	}
	return b.commit, nil
}

// ParseCommit parses a commit object from its canonical envelope
func ParseCommit(data []byte) (*Commit, error) {
	payload, err := objects.ParseContent(data, objects.CommitType)
	if err != nil {
		return nil, err
	}

	c, err := parsePayload(payload)
	if err != nil {
		return nil, err
	}

	c.sha = objects.NewObjectHash(data)
	return c, nil
}

// Type returns the object kind
func (c *Commit) Type() objects.ObjectType {
	return objects.CommitType
}

// Content returns the serialized commit text (payload without header)
func (c *Commit) Content() ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s\n", treeHeader, c.treeSHA)
	for _, parent := range c.parentSHAs {
		fmt.Fprintf(&buf, "%s %s\n", parentHeader, parent)
	}
	fmt.Fprintf(&buf, "%s %s\n", authorHeader, c.author.Format())
	fmt.Fprintf(&buf, "%s %s\n", committerHeader, c.committer.Format())
	buf.WriteByte('\n')
	buf.WriteString(c.message)

	return buf.Bytes(), nil
}

// Hash returns the identity of the commit
func (c *Commit) Hash() (objects.ObjectHash, error) {
	if c.sha != "" {
		return c.sha, nil
	}

	payload, err := c.Content()
	if err != nil {
		return "", fmt.Errorf("failed to get content: %w", err)
	}

	c.sha = objects.ComputeObjectHash(objects.CommitType, payload)
	return c.sha, nil
}

// Size returns the payload size in bytes
func (c *Commit) Size() (int64, error) {
	payload, err := c.Content()
	if err != nil {
		return 0, err
	}
	return int64(len(payload)), nil
}

// Serialize writes the commit in its canonical storage envelope
func (c *Commit) Serialize(w io.Writer) error {
	payload, err := c.Content()
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	if _, err := w.Write(objects.CreateHeader(objects.CommitType, int64(len(payload)))); err != nil {
		return fmt.Errorf("failed to write commit header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write commit content: %w", err)
	}
	return nil
}

// String returns a human-readable representation
func (c *Commit) String() string {
	hash, err := c.Hash()
	if err != nil {
		return fmt.Sprintf("Commit{tree: %s, error: %v}", c.treeSHA.Short(), err)
	}
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parents: %d}",
		hash.Short(), c.treeSHA.Short(), len(c.parentSHAs))
}

// TreeSHA returns the identity of the root tree
func (c *Commit) TreeSHA() objects.ObjectHash {
	return c.treeSHA
}

// ParentSHAs returns the parent identities in order
func (c *Commit) ParentSHAs() []objects.ObjectHash {
	parents := make([]objects.ObjectHash, len(c.parentSHAs))
	copy(parents, c.parentSHAs)
	return parents
}

// FirstParent returns the first parent, or "" for a root commit
func (c *Commit) FirstParent() objects.ObjectHash {
	if len(c.parentSHAs) == 0 {
		return ""
	}
	return c.parentSHAs[0]
}

// IsRoot returns true if the commit has no parents
func (c *Commit) IsRoot() bool {
	return len(c.parentSHAs) == 0
}

// IsMerge returns true if the commit has more than one parent
func (c *Commit) IsMerge() bool {
	return len(c.parentSHAs) > 1
}

// Author returns who wrote the change
func (c *Commit) Author() Person {
	return c.author
}

// Committer returns who recorded the change
func (c *Commit) Committer() Person {
	return c.committer
}

// Message returns the commit message
func (c *Commit) Message() string {
	return c.message
}

// Summary returns the first line of the message
func (c *Commit) Summary() string {
	if idx := strings.IndexByte(c.message, '\n'); idx != -1 {
		return c.message[:idx]
	}
	return c.message
}

// parsePayload parses the commit text: header lines, blank separator, message
func parsePayload(payload []byte) (*Commit, error) {
	c := &Commit{}
	rest := string(payload)
	sawTree := false

	for {
		line, remainder, found := strings.Cut(rest, "\n")
		if !found {
			return nil, fmt.Errorf("malformed commit: missing message separator")
		}
		rest = remainder

		if line == "" {
			break
		}

		key, value, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("malformed commit header line: %q", line)
		}

		switch key {
		case treeHeader:
			sha := objects.ObjectHash(value)
			if err := sha.Validate(); err != nil {
				return nil, fmt.Errorf("malformed tree header: %w", err)
			}
			c.treeSHA = sha
			sawTree = true
		case parentHeader:
			sha := objects.ObjectHash(value)
			if err := sha.Validate(); err != nil {
				return nil, fmt.Errorf("malformed parent header: %w", err)
			}
			c.parentSHAs = append(c.parentSHAs, sha)
		case authorHeader:
			person, err := ParsePerson(value)
			if err != nil {
				return nil, fmt.Errorf("malformed author header: %w", err)
			}
			c.author = person
		case committerHeader:
			person, err := ParsePerson(value)
			if err != nil {
				return nil, fmt.Errorf("malformed committer header: %w", err)
			}
			c.committer = person
		default:
			return nil, fmt.Errorf("unknown commit header: %q", key)
		}
	}

	if !sawTree {
		return nil, fmt.Errorf("malformed commit: missing tree header")
	}
	if c.author.Name == "" {
		return nil, fmt.Errorf("malformed commit: missing author header")
	}
	if c.committer.Name == "" {
		return nil, fmt.Errorf("malformed commit: missing committer header")
	}

	c.message = rest
	return c, nil
}
