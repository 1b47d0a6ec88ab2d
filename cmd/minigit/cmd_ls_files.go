package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minigit-vcs/minigit/pkg/index"
)

func newLsFilesCmd() *cobra.Command {
	var stage bool

	cmd := &cobra.Command{
		Use:   "ls-files",
		Short: "List staged paths",
		Long: `List the paths recorded in the staging index, sorted. With --stage,
each line also shows the staged mode and blob identity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, repoErr := findRepository()
			if repoErr != nil {
				return repoErr
			}

			idx, loadErr := index.Load(r.MiniGit())
			if loadErr != nil {
				return loadErr
			}

			for _, entry := range idx.Entries() {
				if stage {
					fmt.Printf("%s %s\t%s\n", entry.Mode, entry.SHA, entry.Path)
				} else {
					fmt.Println(entry.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&stage, "stage", "s", false, "Show staged mode and identity")

	return cmd
}
