package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
	"github.com/minigit-vcs/minigit/pkg/repository/repo"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new minigit repository",
		Long: `Initialize a new minigit repository in the current directory or specified path.
This creates a .minigit directory with the object store, reference namespace,
HEAD, and default configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			r, err := repo.Init(path)
			if err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}

			fmt.Printf("Initialized empty minigit repository in %s/%s\n",
				r.Root(), mgpath.MiniGitDir)
			return nil
		},
	}

	return cmd
}
