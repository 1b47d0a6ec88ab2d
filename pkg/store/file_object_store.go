package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/minigit-vcs/minigit/pkg/common/fileops"
	"github.com/minigit-vcs/minigit/pkg/common/logger"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/blob"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
	"github.com/minigit-vcs/minigit/pkg/objects/tag"
	"github.com/minigit-vcs/minigit/pkg/objects/tree"
	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

// FileObjectStore stores objects as zlib-compressed loose files under the
// objects directory, fanned out by the first two hex characters of the
// identity.
//
// Storage Layout:
// ┌──────────────────────────────────────────────┐
// │ .minigit/objects/                            │
// │ ├── ab/                                      │
// │ │   └── cdef0123...    (38 hex chars)        │
// │ ├── e6/                                      │
// │ │   └── 9de29bb2...                          │
// └──────────────────────────────────────────────┘
//
// Each file holds the compressed canonical envelope. Because the filename is
// derived from the content, writes are idempotent and an existing file never
// needs rewriting.
type FileObjectStore struct {
	minigit mgpath.MiniGitPath
}

var _ ObjectStore = (*FileObjectStore)(nil)

// NewFileObjectStore creates a store rooted at the given metadata directory
func NewFileObjectStore(minigit mgpath.MiniGitPath) *FileObjectStore {
	return &FileObjectStore{minigit: minigit}
}

// Put stores the object and returns its identity. Storing content that
// already exists is a no-op that returns the same identity.
func (s *FileObjectStore) Put(ctx context.Context, obj objects.Object) (objects.ObjectHash, error) {
	const op = "put"

	if err := ctx.Err(); err != nil {
		return "", err
	}

	hash, err := obj.Hash()
	if err != nil {
		return "", invalidInputError(op, "failed to compute object identity", err)
	}

	objectPath := s.objectPath(hash)
	exists, err := fileops.Exists(objectPath)
	if err != nil {
		return "", fmt.Errorf("check object existence: %w", err)
	}
	if exists {
		logger.Debug("object already stored", "hash", hash.Short())
		return hash, nil
	}

	compressed, err := compressObject(obj)
	if err != nil {
		return "", fmt.Errorf("compress object: %w", err)
	}

	if err := fileops.EnsureParentDir(objectPath); err != nil {
		return "", fmt.Errorf("create fanout directory: %w", err)
	}

	if err := fileops.AtomicWrite(objectPath, compressed, 0444); err != nil {
		return "", fmt.Errorf("write object file: %w", err)
	}

	logger.Debug("stored object", "hash", hash.Short(), "type", obj.Type())
	return hash, nil
}

// Get retrieves an object by its full identity, verifying integrity on the
// way out.
func (s *FileObjectStore) Get(ctx context.Context, hash objects.ObjectHash) (objects.Object, error) {
	const op = "get"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := hash.Validate(); err != nil {
		return nil, invalidInputError(op, "invalid object identity", err)
	}

	envelope, err := s.readEnvelope(op, hash)
	if err != nil {
		return nil, err
	}

	if actual := objects.NewObjectHash(envelope); actual != hash {
		return nil, corruptError(op, hash,
			fmt.Errorf("stored content hashes to %s", actual))
	}

	obj, err := parseObject(envelope)
	if err != nil {
		return nil, corruptError(op, hash, err)
	}

	return obj, nil
}

// Has reports whether an object with the given identity exists
func (s *FileObjectStore) Has(ctx context.Context, hash objects.ObjectHash) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if err := hash.Validate(); err != nil {
		return false, invalidInputError("has", "invalid object identity", err)
	}

	return fileops.Exists(s.objectPath(hash))
}

// ResolvePrefix expands an abbreviated identity to the unique full identity
// it matches. The prefix must be hex, at least 4 characters, and at most a
// full identity. Matching is case-insensitive.
func (s *FileObjectStore) ResolvePrefix(ctx context.Context, prefix string) (objects.ObjectHash, error) {
	const op = "resolve_prefix"

	if err := ctx.Err(); err != nil {
		return "", err
	}

	prefix = strings.ToLower(prefix)
	if err := validatePrefix(op, prefix); err != nil {
		return "", err
	}

	if len(prefix) == objects.HashLength {
		hash := objects.ObjectHash(prefix)
		exists, err := s.Has(ctx, hash)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", notFoundError(op, hash)
		}
		return hash, nil
	}

	matches, err := s.scanFanout(prefix)
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", prefixNotFoundError(op, prefix)
	case 1:
		return matches[0], nil
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
		return "", ambiguousPrefixError(op, prefix, matches)
	}
}

// objectPath returns the loose file path for an identity
func (s *FileObjectStore) objectPath(hash objects.ObjectHash) mgpath.AbsolutePath {
	return s.minigit.ObjectFilePath(hash.String()).ToAbsolutePath()
}

// readEnvelope reads and decompresses the stored envelope for an identity
func (s *FileObjectStore) readEnvelope(op string, hash objects.ObjectHash) ([]byte, error) {
	compressed, readErr := os.ReadFile(s.objectPath(hash).String())
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, notFoundError(op, hash)
		}
		return nil, fmt.Errorf("read object file: %w", readErr)
	}

	reader, zlibErr := zlib.NewReader(bytes.NewReader(compressed))
	if zlibErr != nil {
		return nil, corruptError(op, hash, fmt.Errorf("not valid zlib data: %w", zlibErr))
	}
	defer reader.Close()

	envelope, decompressErr := io.ReadAll(reader)
	if decompressErr != nil {
		return nil, corruptError(op, hash, fmt.Errorf("decompress: %w", decompressErr))
	}

	return envelope, nil
}

// scanFanout scans the fanout directory for identities matching the prefix
func (s *FileObjectStore) scanFanout(prefix string) ([]objects.ObjectHash, error) {
	fanoutDir := s.minigit.ObjectFanoutDir(prefix).ToAbsolutePath()

	entries, err := os.ReadDir(fanoutDir.String())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan fanout directory: %w", err)
	}

	rest := prefix[2:]
	var matches []objects.ObjectHash
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) != objects.HashLength-2 || !strings.HasPrefix(name, rest) {
			continue
		}
		matches = append(matches, objects.ObjectHash(prefix[:2]+name))
	}

	return matches, nil
}

// compressObject serializes the object's envelope and zlib-compresses it
func compressObject(obj objects.Object) ([]byte, error) {
	var envelope bytes.Buffer
	if err := obj.Serialize(&envelope); err != nil {
		return nil, err
	}

	var compressed bytes.Buffer
	writer := zlib.NewWriter(&compressed)
	if _, err := writer.Write(envelope.Bytes()); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return compressed.Bytes(), nil
}

// parseObject parses a canonical envelope into the right object kind
func parseObject(envelope []byte) (objects.Object, error) {
	objType, _, _, err := objects.ParseHeader(envelope)
	if err != nil {
		return nil, err
	}

	switch objType {
	case objects.BlobType:
		return blob.ParseBlob(envelope)
	case objects.TreeType:
		return tree.ParseTree(envelope)
	case objects.CommitType:
		return commit.ParseCommit(envelope)
	case objects.TagType:
		return tag.ParseTag(envelope)
	default:
		return nil, fmt.Errorf("unknown object type: %s", objType)
	}
}

// validatePrefix checks prefix length and hex content
func validatePrefix(op, prefix string) error {
	if len(prefix) < objects.MinPrefixLength {
		return invalidInputError(op,
			fmt.Sprintf("prefix %q is shorter than %d characters", prefix, objects.MinPrefixLength), nil)
	}
	if len(prefix) > objects.HashLength {
		return invalidInputError(op,
			fmt.Sprintf("prefix %q is longer than a full identity", prefix), nil)
	}
	if !objects.IsHexString(prefix) {
		return invalidInputError(op,
			fmt.Sprintf("prefix %q contains non-hex characters", prefix), nil)
	}
	return nil
}
