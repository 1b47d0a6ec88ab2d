package store

import (
	"context"

	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/blob"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
	"github.com/minigit-vcs/minigit/pkg/objects/tag"
	"github.com/minigit-vcs/minigit/pkg/objects/tree"
)

// Typed accessors over an ObjectStore. Each loads an object and checks its
// kind, turning a mismatch into a WrongKind error rather than a panic at the
// point of use.

// LoadBlob retrieves the object at hash and asserts it is a blob
func LoadBlob(ctx context.Context, s ObjectStore, hash objects.ObjectHash) (*blob.Blob, error) {
	obj, err := s.Get(ctx, hash)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*blob.Blob)
	if !ok {
		return nil, wrongKindError("load_blob", hash, objects.BlobType, obj.Type())
	}
	return b, nil
}

// LoadTree retrieves the object at hash and asserts it is a tree
func LoadTree(ctx context.Context, s ObjectStore, hash objects.ObjectHash) (*tree.Tree, error) {
	obj, err := s.Get(ctx, hash)
	if err != nil {
		return nil, err
	}
	t, ok := obj.(*tree.Tree)
	if !ok {
		return nil, wrongKindError("load_tree", hash, objects.TreeType, obj.Type())
	}
	return t, nil
}

// LoadCommit retrieves the object at hash and asserts it is a commit
func LoadCommit(ctx context.Context, s ObjectStore, hash objects.ObjectHash) (*commit.Commit, error) {
	obj, err := s.Get(ctx, hash)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*commit.Commit)
	if !ok {
		return nil, wrongKindError("load_commit", hash, objects.CommitType, obj.Type())
	}
	return c, nil
}

// LoadTag retrieves the object at hash and asserts it is an annotated tag
func LoadTag(ctx context.Context, s ObjectStore, hash objects.ObjectHash) (*tag.Tag, error) {
	obj, err := s.Get(ctx, hash)
	if err != nil {
		return nil, err
	}
	t, ok := obj.(*tag.Tag)
	if !ok {
		return nil, wrongKindError("load_tag", hash, objects.TagType, obj.Type())
	}
	return t, nil
}

// TreeLoader adapts an ObjectStore to the tree walker's Loader interface
type TreeLoader struct {
	Store ObjectStore
	Ctx   context.Context
}

// NewTreeLoader creates a tree loader bound to the given store and context
func NewTreeLoader(ctx context.Context, s ObjectStore) *TreeLoader {
	return &TreeLoader{Store: s, Ctx: ctx}
}

// LoadTree implements tree.Loader
func (tl *TreeLoader) LoadTree(sha objects.ObjectHash) (*tree.Tree, error) {
	return LoadTree(tl.Ctx, tl.Store, sha)
}

var _ tree.Loader = (*TreeLoader)(nil)
