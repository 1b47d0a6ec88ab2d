package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minigit-vcs/minigit/cmd/ui"
	"github.com/minigit-vcs/minigit/pkg/diff"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/repository/repo"
	"github.com/minigit-vcs/minigit/pkg/store"
)

func newDiffCmd() *cobra.Command {
	var contextLines int
	var nameStatus bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "diff <revision> <revision>",
		Short: "Show changes between two snapshots",
		Long: `Compare the trees two revisions name and show a unified diff of every
path that differs. Commit revisions compare their root trees. With
--name-status only the change kind and path are printed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, repoErr := findRepository()
			if repoErr != nil {
				return repoErr
			}

			ctx := context.Background()
			oldTree, oldErr := resolveTree(ctx, r, args[0])
			if oldErr != nil {
				return oldErr
			}
			newTree, newErr := resolveTree(ctx, r, args[1])
			if newErr != nil {
				return newErr
			}

			loader := store.NewTreeLoader(ctx, r.Objects)
			changes, diffErr := diff.CompareTrees(loader, oldTree, newTree)
			if diffErr != nil {
				return diffErr
			}

			if nameStatus {
				for _, change := range changes {
					fmt.Printf("%s\t%s\n", change.Kind, change.Path)
				}
				return nil
			}

			for _, change := range changes {
				rendered, renderErr := renderChange(ctx, r, change, contextLines, noColor)
				if renderErr != nil {
					return renderErr
				}
				fmt.Print(rendered)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&contextLines, "context", diff.DefaultContext, "Unchanged lines shown around each change")
	cmd.Flags().BoolVar(&nameStatus, "name-status", false, "Show only change kinds and paths")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// renderChange produces the unified diff text for one changed path
func renderChange(ctx context.Context, r *repo.Repository, change diff.Change, contextLines int, noColor bool) (string, error) {
	oldText, oldErr := blobText(ctx, r, change.OldSHA)
	if oldErr != nil {
		return "", oldErr
	}
	newText, newErr := blobText(ctx, r, change.NewSHA)
	if newErr != nil {
		return "", newErr
	}

	oldName, newName := "a/"+change.Path, "b/"+change.Path
	switch change.Kind {
	case diff.Added:
		oldName = "/dev/null"
	case diff.Removed:
		newName = "/dev/null"
	}

	unified := diff.Format(oldName, newName, oldText, newText, contextLines)
	if unified == "" && change.Kind == diff.Modified {
		// Content identical, only the mode changed.
		return fmt.Sprintf("mode change %s => %s for %s\n",
			change.OldMode, change.NewMode, change.Path), nil
	}

	if noColor {
		return unified, nil
	}
	return colorizeDiff(unified), nil
}

// blobText loads a blob's content as text; the zero identity yields ""
func blobText(ctx context.Context, r *repo.Repository, sha objects.ObjectHash) (string, error) {
	if sha == "" {
		return "", nil
	}
	b, loadErr := store.LoadBlob(ctx, r.Objects, sha)
	if loadErr != nil {
		return "", loadErr
	}
	content, contentErr := b.Content()
	if contentErr != nil {
		return "", contentErr
	}
	return string(content), nil
}

// colorizeDiff applies terminal styling per unified-diff line
func colorizeDiff(unified string) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(unified, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "---") || strings.HasPrefix(text, "+++"):
			sb.WriteString(ui.FileHeader(text))
		case strings.HasPrefix(text, "@@"):
			sb.WriteString(ui.HunkHeader(text))
		case strings.HasPrefix(text, "+"):
			sb.WriteString(ui.AddedLine(text))
		case strings.HasPrefix(text, "-"):
			sb.WriteString(ui.RemovedLine(text))
		default:
			sb.WriteString(text)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
