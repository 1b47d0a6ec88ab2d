package mgpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepositoryPath represents an absolute path to a repository root directory
// Example: "/home/user/myproject"
type RepositoryPath string

// AbsolutePath represents any absolute filesystem path
type AbsolutePath string

// RelativePath represents a normalized relative path (forward slashes, no ..)
// Example: "src/main.go" or "docs/README.md"
type RelativePath string

// NewRepositoryPath validates and creates a RepositoryPath from a string
func NewRepositoryPath(path string) (RepositoryPath, error) {
	if path == "" {
		return "", fmt.Errorf("repository path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve repository path: %w", err)
	}
	return RepositoryPath(abs), nil
}

// String returns the path as a string
func (rp RepositoryPath) String() string {
	return string(rp)
}

// IsValid checks if this is a valid repository path
func (rp RepositoryPath) IsValid() bool {
	return len(rp) > 0
}

// Join joins path elements to the repository path
func (rp RepositoryPath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(rp)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// MiniGitPath returns the path to the .minigit directory
func (rp RepositoryPath) MiniGitPath() MiniGitPath {
	return MiniGitPath(filepath.Join(string(rp), MiniGitDir))
}

// String returns the path as a string
func (ap AbsolutePath) String() string {
	return string(ap)
}

// IsValid checks if this is a valid path
func (ap AbsolutePath) IsValid() bool {
	return len(ap) > 0
}

// Join joins path elements to the absolute path
func (ap AbsolutePath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(ap)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// Dir returns all but the last element of the path
func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// RelativePath methods

// String returns the path as a string
func (rp RelativePath) String() string {
	return string(rp)
}

// Normalize converts the path to forward slashes without leading "./"
// or trailing "/"
func (rp RelativePath) Normalize() RelativePath {
	return RelativePath(NormalizePath(string(rp)))
}

// Base returns the last element of the path
func (rp RelativePath) Base() string {
	if rp == "" {
		return ""
	}
	s := string(rp.Normalize())
	if idx := strings.LastIndexByte(s, '/'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// IsInSubdir reports whether the path is below the given directory
func (rp RelativePath) IsInSubdir(dir string) bool {
	if dir == "" || dir == "." {
		return true
	}
	return strings.HasPrefix(string(rp.Normalize()), NormalizePath(dir)+"/")
}

// Helper functions

// IsPathSafe checks if a path is safe (no directory traversal, relative,
// forward slashes only)
func IsPathSafe(path string) bool {
	if strings.Contains(path, "..") {
		return false
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// NormalizePath normalizes a path (forward slashes, no leading "./",
// no trailing slash)
func NormalizePath(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimPrefix(path, "./")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// JoinPaths joins multiple path segments using forward slashes
func JoinPaths(paths ...string) string {
	return NormalizePath(filepath.Join(paths...))
}
