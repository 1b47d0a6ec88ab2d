package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/common/fileops"
	"github.com/minigit-vcs/minigit/pkg/common/logger"
	"github.com/minigit-vcs/minigit/pkg/config"
	"github.com/minigit-vcs/minigit/pkg/refs"
	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
	"github.com/minigit-vcs/minigit/pkg/revision"
	"github.com/minigit-vcs/minigit/pkg/store"
)

const pkgName = "repo"

// Repository ties the stores of one repository together: the worktree root,
// the object store, the reference store, and the configuration.
type Repository struct {
	root    mgpath.RepositoryPath
	minigit mgpath.MiniGitPath

	Objects store.ObjectStore
	Refs    *refs.Store
	Config  config.Config
}

// Init creates a new repository at the given path.
//
// Skeleton created:
//
//	.minigit/
//	├── objects/
//	├── refs/heads/
//	├── refs/tags/
//	├── HEAD          → ref: refs/heads/<default-branch>
//	└── config.toml
//
// HEAD points at the default branch before any commit exists, so the first
// commit lands on it. Fails if the path already holds a repository.
func Init(path string) (*Repository, error) {
	const op = "init"

	root, rootErr := mgpath.NewRepositoryPath(path)
	if rootErr != nil {
		return nil, err.New(pkgName, err.CodeInvalidInput, op, "invalid repository path", rootErr)
	}

	minigit := root.MiniGitPath()
	exists, existsErr := fileops.Exists(minigit.ToAbsolutePath())
	if existsErr != nil {
		return nil, existsErr
	}
	if exists {
		return nil, err.New(pkgName, err.CodeAlreadyExists, op,
			fmt.Sprintf("repository already exists at %s", root), nil)
	}

	for _, dir := range []string{mgpath.ObjectsDir, mgpath.HeadsDir, mgpath.TagsDir} {
		if mkErr := fileops.EnsureDir(minigit.Join(filepath.FromSlash(dir)).ToAbsolutePath()); mkErr != nil {
			return nil, fmt.Errorf("create repository skeleton: %w", mkErr)
		}
	}

	cfg := config.Default()
	if saveErr := config.Save(minigit, cfg); saveErr != nil {
		return nil, saveErr
	}

	refStore := refs.NewStore(minigit)
	if headErr := refStore.SetHEADToBranch(cfg.Core.DefaultBranch); headErr != nil {
		return nil, headErr
	}

	logger.Info("initialized repository", "path", root.String())

	return &Repository{
		root:    root,
		minigit: minigit,
		Objects: store.NewFileObjectStore(minigit),
		Refs:    refStore,
		Config:  cfg,
	}, nil
}

// Open opens an existing repository rooted exactly at path
func Open(path string) (*Repository, error) {
	const op = "open"

	root, rootErr := mgpath.NewRepositoryPath(path)
	if rootErr != nil {
		return nil, err.New(pkgName, err.CodeInvalidInput, op, "invalid repository path", rootErr)
	}

	minigit := root.MiniGitPath()
	isDir, dirErr := fileops.IsDirectory(minigit.ToAbsolutePath())
	if dirErr != nil {
		return nil, dirErr
	}
	if !isDir {
		return nil, err.New(pkgName, err.CodeNotFound, op,
			fmt.Sprintf("no repository found at %s", root), nil)
	}

	cfg, cfgErr := config.Load(minigit)
	if cfgErr != nil {
		return nil, cfgErr
	}

	return &Repository{
		root:    root,
		minigit: minigit,
		Objects: store.NewFileObjectStore(minigit),
		Refs:    refs.NewStore(minigit),
		Config:  cfg,
	}, nil
}

// Discover walks up from start looking for a repository, like running a
// command anywhere inside a worktree.
func Discover(start string) (*Repository, error) {
	const op = "discover"

	current, absErr := filepath.Abs(start)
	if absErr != nil {
		return nil, err.New(pkgName, err.CodeInvalidInput, op, "invalid start path", absErr)
	}

	for {
		candidate := filepath.Join(current, mgpath.MiniGitDir)
		info, statErr := os.Stat(candidate)
		if statErr == nil && info.IsDir() {
			return Open(current)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, err.New(pkgName, err.CodeNotFound, op,
				fmt.Sprintf("no repository found in %s or any parent", start), nil)
		}
		current = parent
	}
}

// Root returns the worktree root
func (r *Repository) Root() mgpath.RepositoryPath {
	return r.root
}

// MiniGit returns the metadata directory path
func (r *Repository) MiniGit() mgpath.MiniGitPath {
	return r.minigit
}

// Resolver returns a revision resolver over this repository's stores
func (r *Repository) Resolver() *revision.Resolver {
	return revision.NewResolver(r.Objects, r.Refs)
}
