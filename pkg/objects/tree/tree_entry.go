package tree

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/minigit-vcs/minigit/pkg/objects"
)

// EntryMode represents the mode of an entry in a tree object
type EntryMode string

const (
	ModeDirectory  EntryMode = "040000"
	ModeRegular    EntryMode = "100644"
	ModeExecutable EntryMode = "100755"
	ModeSymlink    EntryMode = "120000"
)

const shaLengthBytes = 20

// Entry represents a single entry in a tree object.
//
// Each entry contains:
// - mode: entry kind and permissions (6-character octal string)
// - name: file or directory name (single path segment)
// - sha: identity of the referenced object
//
// Entry kinds by mode:
// - 040000: subtree (tree object)
// - 100644: regular file (blob object)
// - 100755: executable file (blob object)
// - 120000: symbolic link (blob object)
//
// Serialized format inside a tree payload:
// ┌──────────────────────────────────────────────┐
// │ mode SPACE name NULL [20-byte binary SHA-1]  │
// └──────────────────────────────────────────────┘
type Entry struct {
	mode EntryMode
	name string
	sha  objects.ObjectHash
}

// NewEntry creates a new tree entry with validation
func NewEntry(mode EntryMode, name string, sha objects.ObjectHash) (*Entry, error) {
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := sha.Validate(); err != nil {
		return nil, fmt.Errorf("invalid entry sha: %w", err)
	}

	return &Entry{
		mode: mode,
		name: name,
		sha:  objects.ObjectHash(strings.ToLower(sha.String())),
	}, nil
}

// Mode returns the entry mode
func (e *Entry) Mode() EntryMode {
	return e.mode
}

// Name returns the entry name
func (e *Entry) Name() string {
	return e.name
}

// SHA returns the identity of the referenced object
func (e *Entry) SHA() objects.ObjectHash {
	return e.sha
}

// IsSubtree returns true if this entry references a tree object
func (e *Entry) IsSubtree() bool {
	return e.mode == ModeDirectory
}

// IsBlob returns true if this entry references a blob object
func (e *Entry) IsBlob() bool {
	return e.mode == ModeRegular || e.mode == ModeExecutable || e.mode == ModeSymlink
}

// IsExecutable returns true if this entry is an executable file
func (e *Entry) IsExecutable() bool {
	return e.mode == ModeExecutable
}

// TargetType returns the object kind this entry references
func (e *Entry) TargetType() objects.ObjectType {
	if e.IsSubtree() {
		return objects.TreeType
	}
	return objects.BlobType
}

// Serialize serializes this entry for inclusion in a tree payload
func (e *Entry) Serialize() ([]byte, error) {
	shaBytes, err := e.sha.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to decode entry sha: %w", err)
	}

	modeAndName := fmt.Sprintf("%s %s%c", e.mode, e.name, objects.NullByte)
	result := make([]byte, 0, len(modeAndName)+len(shaBytes))
	result = append(result, modeAndName...)
	result = append(result, shaBytes...)
	return result, nil
}

// sortKey returns the canonical sort key: subtrees compare as if their
// name carried a trailing "/", matching the on-disk ordering rule that
// keeps tree identities reproducible.
func (e *Entry) sortKey() string {
	if e.IsSubtree() {
		return e.name + "/"
	}
	return e.name
}

// CompareTo compares this entry with another by canonical order.
// Returns negative, zero, or positive.
func (e *Entry) CompareTo(other *Entry) int {
	return strings.Compare(e.sortKey(), other.sortKey())
}

// DeserializeEntry reads one entry from a tree payload at the given offset,
// returning the entry and the offset of the next one.
func DeserializeEntry(data []byte, offset int) (*Entry, int, error) {
	spaceIndex := bytes.IndexByte(data[offset:], objects.SpaceByte)
	if spaceIndex == -1 {
		return nil, 0, fmt.Errorf("invalid tree entry: missing space")
	}
	spaceIndex += offset

	mode := EntryMode(data[offset:spaceIndex])

	nullIndex := bytes.IndexByte(data[spaceIndex+1:], objects.NullByte)
	if nullIndex == -1 {
		return nil, 0, fmt.Errorf("invalid tree entry: missing null byte")
	}
	nullIndex += spaceIndex + 1

	name := string(data[spaceIndex+1 : nullIndex])

	start := nullIndex + 1
	end := start + shaLengthBytes
	if end > len(data) {
		return nil, 0, fmt.Errorf("invalid tree entry: incomplete sha")
	}

	sha := objects.ObjectHash(hex.EncodeToString(data[start:end]))

	entry, err := NewEntry(mode, name, sha)
	if err != nil {
		return nil, 0, err
	}

	return entry, end, nil
}

// validateMode checks that the mode is one of the known entry modes
func validateMode(mode EntryMode) error {
	switch mode {
	case ModeDirectory, ModeRegular, ModeExecutable, ModeSymlink:
		return nil
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

// validateName checks that the name is a single non-empty path segment
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid entry name: %s", name)
	}
	if strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("invalid characters in name: %s", name)
	}
	return nil
}
