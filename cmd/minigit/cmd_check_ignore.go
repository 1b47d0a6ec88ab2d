package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/minigit-vcs/minigit/pkg/repository/ignore"
)

func newCheckIgnoreCmd() *cobra.Command {
	var showMatch bool

	cmd := &cobra.Command{
		Use:   "check-ignore <path>...",
		Short: "Check paths against the ignore rules",
		Long: `Check each path against the repository's .minigitignore patterns and
print the ones that are ignored. With --verbose-match the deciding pattern
and its line number are shown too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, repoErr := findRepository()
			if repoErr != nil {
				return repoErr
			}

			set, loadErr := ignore.Load(r.Root())
			if loadErr != nil {
				return loadErr
			}

			anyIgnored := false
			for _, path := range args {
				isDir := false
				if info, statErr := os.Stat(filepath.Join(r.Root().String(), path)); statErr == nil {
					isDir = info.IsDir()
				}

				ignored, pattern := set.Match(path, isDir)
				if !ignored {
					continue
				}
				anyIgnored = true

				if showMatch && pattern != nil {
					fmt.Printf("%s:%d:%s\t%s\n", ".minigitignore", pattern.Line, pattern.Raw, path)
				} else {
					fmt.Println(path)
				}
			}

			if !anyIgnored {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMatch, "verbose-match", false, "Show the pattern that decided each path")

	return cmd
}
