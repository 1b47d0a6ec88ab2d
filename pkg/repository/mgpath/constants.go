package mgpath

// Repository layout constants.
//
// A minigit repository keeps all metadata under a single .minigit directory
// at the worktree root:
//
// ┌─ <worktree>/
// │ ├─ .minigit/
// │ │ ├─ objects/      ← content-addressed object storage
// │ │ ├─ refs/heads/   ← branch references
// │ │ ├─ refs/tags/    ← tag references
// │ │ ├─ HEAD          ← current-position reference
// │ │ ├─ config.toml   ← repository configuration
// │ │ └─ index         ← staging index
// │ └─ ...             ← working files
const (
	// MiniGitDir is the metadata directory at the worktree root
	MiniGitDir = ".minigit"

	// ObjectsDir holds the content-addressed object store
	ObjectsDir = "objects"

	// RefsDir is the root of the reference namespace
	RefsDir = "refs"

	// HeadsDir holds branch references, relative to RefsDir
	HeadsDir = "refs/heads"

	// TagsDir holds tag references, relative to RefsDir
	TagsDir = "refs/tags"

	// HeadFile is the current-position reference
	HeadFile = "HEAD"

	// ConfigFile is the repository configuration file
	ConfigFile = "config.toml"

	// IndexFile is the staging index
	IndexFile = "index"

	// IgnoreFile is the per-repository ignore pattern file
	IgnoreFile = ".minigitignore"

	// RefLockFile serializes reference writers
	RefLockFile = "refs.lock"
)
