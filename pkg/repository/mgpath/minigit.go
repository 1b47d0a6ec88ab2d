package mgpath

import "path/filepath"

// MiniGitPath represents a path within the .minigit metadata directory
type MiniGitPath string

// String returns the path as a string
func (mp MiniGitPath) String() string {
	return string(mp)
}

// IsValid checks if this is a valid path
func (mp MiniGitPath) IsValid() bool {
	return len(mp) > 0
}

// Join joins path elements to the path
func (mp MiniGitPath) Join(elem ...string) MiniGitPath {
	parts := append([]string{string(mp)}, elem...)
	return MiniGitPath(filepath.Join(parts...))
}

// ToAbsolutePath converts to an absolute path
func (mp MiniGitPath) ToAbsolutePath() AbsolutePath {
	return AbsolutePath(mp)
}

// ObjectsPath returns the path to the objects directory
func (mp MiniGitPath) ObjectsPath() MiniGitPath {
	return mp.Join(ObjectsDir)
}

// RefsPath returns the path to the refs directory
func (mp MiniGitPath) RefsPath() MiniGitPath {
	return mp.Join(RefsDir)
}

// HeadPath returns the path to the HEAD file
func (mp MiniGitPath) HeadPath() MiniGitPath {
	return mp.Join(HeadFile)
}

// IndexPath returns the path to the index file
func (mp MiniGitPath) IndexPath() MiniGitPath {
	return mp.Join(IndexFile)
}

// ConfigPath returns the path to the config file
func (mp MiniGitPath) ConfigPath() MiniGitPath {
	return mp.Join(ConfigFile)
}

// RefLockPath returns the path to the reference write lock
func (mp MiniGitPath) RefLockPath() MiniGitPath {
	return mp.Join(RefLockFile)
}

// ObjectFilePath returns the path to an object file given its 40-char hex
// identity, using the two-level fan-out layout.
// Example: hash "abcdef..." returns ".minigit/objects/ab/cdef..."
func (mp MiniGitPath) ObjectFilePath(hash string) MiniGitPath {
	if len(hash) < 3 {
		return ""
	}
	return mp.Join(ObjectsDir, hash[:2], hash[2:])
}

// ObjectFanoutDir returns the fan-out directory for a hash prefix of at
// least two characters.
func (mp MiniGitPath) ObjectFanoutDir(prefix string) MiniGitPath {
	if len(prefix) < 2 {
		return ""
	}
	return mp.Join(ObjectsDir, prefix[:2])
}
