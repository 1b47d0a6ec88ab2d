package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
	"github.com/minigit-vcs/minigit/pkg/objects/tree"
	"github.com/minigit-vcs/minigit/pkg/repository/repo"
	"github.com/minigit-vcs/minigit/pkg/store"
)

func newLsTreeCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls-tree [-r] <revision>",
		Short: "List the contents of a tree",
		Long: `List the entries of the tree a revision names. A commit revision lists
its root tree. With -r, subtrees are expanded recursively and blob entries
are printed with their full paths.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, repoErr := findRepository()
			if repoErr != nil {
				return repoErr
			}

			ctx := context.Background()
			treeHash, resolveErr := resolveTree(ctx, r, args[0])
			if resolveErr != nil {
				return resolveErr
			}

			loader := store.NewTreeLoader(ctx, r.Objects)

			if recursive {
				return tree.Walk(loader, treeHash, func(fe tree.FlatEntry) error {
					fmt.Printf("%s %s %s\t%s\n",
						fe.Entry.Mode(), fe.Entry.TargetType(), fe.Entry.SHA(), fe.Path)
					return nil
				})
			}

			entries, listErr := tree.List(loader, treeHash)
			if listErr != nil {
				return listErr
			}
			for _, entry := range entries {
				fmt.Printf("%s %s %s\t%s\n",
					entry.Mode(), entry.TargetType(), entry.SHA(), entry.Name())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recurse into subtrees")

	return cmd
}

// resolveTree resolves a revision to a tree identity, peeling a commit to
// its root tree.
func resolveTree(ctx context.Context, r *repo.Repository, rev string) (objects.ObjectHash, error) {
	hash, resolveErr := r.Resolver().Resolve(ctx, rev)
	if resolveErr != nil {
		return "", resolveErr
	}

	obj, getErr := r.Objects.Get(ctx, hash)
	if getErr != nil {
		return "", getErr
	}

	if c, ok := obj.(*commit.Commit); ok {
		return c.TreeSHA(), nil
	}
	return hash, nil
}
