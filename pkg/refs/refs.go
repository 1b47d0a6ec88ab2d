package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"github.com/minigit-vcs/minigit/pkg/common/fileops"
	"github.com/minigit-vcs/minigit/pkg/common/logger"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

const (
	// SymbolicRefPrefix marks a reference that names another reference
	// instead of an object
	SymbolicRefPrefix = "ref: "

	// MaxRefDepth bounds symbolic indirection. A chain longer than this is
	// treated as cyclic.
	MaxRefDepth = 10

	// HEAD is the current-position reference
	HEAD = "HEAD"
)

// Value is the decoded content of one reference file: exactly one of Hash
// (a direct reference) or Target (a symbolic reference) is set.
type Value struct {
	Hash   objects.ObjectHash
	Target string
}

// IsSymbolic reports whether the value names another reference
func (v Value) IsSymbolic() bool {
	return v.Target != ""
}

// Ref pairs a reference name with the identity it ultimately resolves to
type Ref struct {
	Name string
	Hash objects.ObjectHash
}

// Store reads and writes references under the metadata directory.
//
// Each reference is a file whose path is its name ("HEAD",
// "refs/heads/main", "refs/tags/v1.0"). A direct reference holds a full hex
// identity and a newline; a symbolic reference holds "ref: <name>" and a
// newline. Writers serialize on a single repository-wide file lock and
// publish through atomic rename, so readers never observe a torn reference.
type Store struct {
	minigit mgpath.MiniGitPath
	lock    *flock.Flock
}

// NewStore creates a reference store rooted at the given metadata directory
func NewStore(minigit mgpath.MiniGitPath) *Store {
	return &Store{
		minigit: minigit,
		lock:    flock.New(minigit.RefLockPath().String()),
	}
}

// Read returns the decoded content of a single reference file without
// following symbolic indirection.
func (s *Store) Read(name string) (Value, error) {
	const op = "read"

	if err := validateName(op, name); err != nil {
		return Value{}, err
	}

	content, err := fileops.ReadStringStrict(s.refPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Value{}, notFoundError(op, name)
		}
		return Value{}, fmt.Errorf("read reference %q: %w", name, err)
	}

	return parseValue(op, name, content)
}

// WriteHash points the reference directly at an object identity, creating
// parent directories as needed.
func (s *Store) WriteHash(name string, hash objects.ObjectHash) error {
	const op = "write_hash"

	if err := validateName(op, name); err != nil {
		return err
	}
	if err := hash.Validate(); err != nil {
		return invalidNameError(op, name, err.Error())
	}

	return s.write(op, name, hash.String()+"\n")
}

// WriteSymbolic points the reference at another reference by name
func (s *Store) WriteSymbolic(name, target string) error {
	const op = "write_symbolic"

	if err := validateName(op, name); err != nil {
		return err
	}
	if err := validateName(op, target); err != nil {
		return err
	}

	return s.write(op, name, SymbolicRefPrefix+target+"\n")
}

// Resolve follows the reference through symbolic indirection until it
// reaches a direct identity. More than MaxRefDepth hops fails as cyclic.
func (s *Store) Resolve(name string) (objects.ObjectHash, error) {
	const op = "resolve"

	current := name
	for hop := 0; hop < MaxRefDepth; hop++ {
		value, err := s.Read(current)
		if err != nil {
			return "", err
		}

		if !value.IsSymbolic() {
			return value.Hash, nil
		}
		current = value.Target
	}

	return "", cyclicError(op, name)
}

// Exists reports whether the reference file exists
func (s *Store) Exists(name string) (bool, error) {
	if err := validateName("exists", name); err != nil {
		return false, err
	}
	return fileops.Exists(s.refPath(name))
}

// Delete removes a reference. Deleting a missing reference is not an error.
func (s *Store) Delete(name string) error {
	const op = "delete"

	if err := validateName(op, name); err != nil {
		return err
	}

	if err := s.acquireLock(op); err != nil {
		return err
	}
	defer s.lock.Unlock()

	return fileops.SafeRemove(s.refPath(name))
}

// List returns all references under the given namespace prefix (for example
// "refs/heads"), each resolved to its identity, sorted by name. An empty
// prefix lists the whole refs namespace.
func (s *Store) List(prefix string) ([]Ref, error) {
	const op = "list"

	if prefix == "" {
		prefix = mgpath.RefsDir
	}
	if err := validateName(op, prefix); err != nil {
		return nil, err
	}

	root := s.refPath(prefix).String()
	var names []string

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.minigit.String(), path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("list references under %q: %w", prefix, walkErr)
	}

	sort.Strings(names)

	result := make([]Ref, 0, len(names))
	for _, name := range names {
		hash, err := s.Resolve(name)
		if err != nil {
			return nil, err
		}
		result = append(result, Ref{Name: name, Hash: hash})
	}

	return result, nil
}

// ResolveHEAD resolves the current-position reference to an identity
func (s *Store) ResolveHEAD() (objects.ObjectHash, error) {
	return s.Resolve(HEAD)
}

// CurrentBranch returns the branch HEAD points at. The second return is
// false when HEAD is detached (a direct identity).
func (s *Store) CurrentBranch() (string, bool, error) {
	value, err := s.Read(HEAD)
	if err != nil {
		return "", false, err
	}
	if !value.IsSymbolic() {
		return "", false, nil
	}
	return strings.TrimPrefix(value.Target, mgpath.HeadsDir+"/"), true, nil
}

// SetHEADToBranch points HEAD at the named branch symbolically
func (s *Store) SetHEADToBranch(branch string) error {
	return s.WriteSymbolic(HEAD, mgpath.HeadsDir+"/"+branch)
}

// write serializes with the repository reference lock and publishes the new
// content atomically.
func (s *Store) write(op, name, content string) error {
	if err := s.acquireLock(op); err != nil {
		return err
	}
	defer s.lock.Unlock()

	path := s.refPath(name)
	if err := fileops.EnsureParentDir(path); err != nil {
		return fmt.Errorf("create reference directory: %w", err)
	}

	if err := fileops.AtomicWrite(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write reference %q: %w", name, err)
	}

	logger.Debug("wrote reference", "name", name)
	return nil
}

func (s *Store) acquireLock(op string) error {
	if err := s.lock.Lock(); err != nil {
		return lockError(op, err)
	}
	return nil
}

// refPath maps a reference name to its file under the metadata directory
func (s *Store) refPath(name string) mgpath.AbsolutePath {
	return s.minigit.Join(filepath.FromSlash(name)).ToAbsolutePath()
}

// parseValue decodes reference file content into a Value
func parseValue(op, name, content string) (Value, error) {
	if target, ok := strings.CutPrefix(content, SymbolicRefPrefix); ok {
		target = strings.TrimSpace(target)
		if target == "" {
			return Value{}, invalidFormatError(op, name, fmt.Errorf("empty symbolic target"))
		}
		return Value{Target: target}, nil
	}

	hash, err := objects.NewObjectHashFromString(content)
	if err != nil {
		return Value{}, invalidFormatError(op, name, err)
	}
	return Value{Hash: hash}, nil
}

// validateName rejects names that could escape the metadata directory or
// collide with internal files.
func validateName(op, name string) error {
	if name == "" {
		return invalidNameError(op, name, "empty name")
	}
	if name != HEAD && !strings.HasPrefix(name, mgpath.RefsDir+"/") && name != mgpath.RefsDir {
		return invalidNameError(op, name, "must be HEAD or live under refs/")
	}
	if !mgpath.IsPathSafe(name) {
		return invalidNameError(op, name, "unsafe path")
	}
	if strings.HasSuffix(name, "/") || strings.Contains(name, "//") {
		return invalidNameError(op, name, "malformed path")
	}
	return nil
}

