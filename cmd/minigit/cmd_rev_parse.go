package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRevParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rev-parse <revision>...",
		Short: "Resolve revisions to object identities",
		Long: `Resolve each revision expression to the full 40-character identity it
names. Expressions combine a base (identity, abbreviated identity, HEAD, or
reference name) with ancestry operators like ^ and ~2.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, repoErr := findRepository()
			if repoErr != nil {
				return repoErr
			}

			ctx := context.Background()
			resolver := r.Resolver()

			for _, rev := range args {
				hash, resolveErr := resolver.Resolve(ctx, rev)
				if resolveErr != nil {
					return resolveErr
				}
				fmt.Println(hash)
			}
			return nil
		},
	}

	return cmd
}
