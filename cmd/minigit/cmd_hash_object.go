package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/blob"
	"github.com/minigit-vcs/minigit/pkg/repository/repo"
)

func newHashObjectCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object [-w] <file>...",
		Short: "Compute object identities for files",
		Long: `Compute the object identity each file would be stored under, and with -w
actually store the files as blob objects. Output lines keep the argument
order regardless of which file finishes hashing first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var r *repo.Repository
			if write {
				found, repoErr := findRepository()
				if repoErr != nil {
					return repoErr
				}
				r = found
			}

			results := make([]objects.ObjectHash, len(args))

			group, groupCtx := errgroup.WithContext(ctx)
			for i, file := range args {
				group.Go(func() error {
					hash, hashErr := hashFile(groupCtx, r, file)
					if hashErr != nil {
						return hashErr
					}
					results[i] = hash
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			for _, hash := range results {
				fmt.Println(hash)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Store the objects, not just compute identities")

	return cmd
}

// hashFile hashes one file as a blob, storing it when r is non-nil
func hashFile(ctx context.Context, r *repo.Repository, file string) (objects.ObjectHash, error) {
	data, readErr := os.ReadFile(file)
	if readErr != nil {
		return "", fmt.Errorf("read %s: %w", file, readErr)
	}

	b := blob.NewBlob(data)
	if r == nil {
		return b.Hash()
	}
	return r.Objects.Put(ctx, b)
}
