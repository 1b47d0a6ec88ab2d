package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/minigit-vcs/minigit/cmd/ui"
	"github.com/minigit-vcs/minigit/pkg/common/err"
	"github.com/minigit-vcs/minigit/pkg/history"
	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/repository/repo"
)

func newLogCmd() *cobra.Command {
	var limit int
	var oneline bool
	var useTable bool

	cmd := &cobra.Command{
		Use:   "log [revision]",
		Short: "Show commit history",
		Long: `Show the commit history reachable from a revision, newest first. With no
revision the walk starts from HEAD. Merge ancestry is followed through all
parents and each commit appears once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, repoErr := findRepository()
			if repoErr != nil {
				return repoErr
			}

			ctx := context.Background()
			start, startErr := logStart(ctx, r, args)
			if startErr != nil {
				return startErr
			}
			if start == "" {
				fmt.Println(colorYellow("No commits yet"))
				return nil
			}

			walker := history.NewWalker(r.Objects)
			entries, walkErr := walker.Collect(ctx, []objects.ObjectHash{start}, limit)
			if walkErr != nil {
				return walkErr
			}

			switch {
			case oneline:
				displayCommitsOneline(entries)
			case useTable:
				displayCommitsAsTable(entries)
			default:
				displayCommitsDetailed(entries)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of commits to show (0 = all)")
	cmd.Flags().BoolVar(&oneline, "oneline", false, "One line per commit: short identity and summary")
	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display commits in table format")

	return cmd
}

// logStart resolves where the walk begins. Returns "" when HEAD points at a
// branch with no commits yet.
func logStart(ctx context.Context, r *repo.Repository, args []string) (objects.ObjectHash, error) {
	if len(args) > 0 {
		return r.Resolver().Resolve(ctx, args[0])
	}

	hash, headErr := r.Refs.ResolveHEAD()
	if headErr != nil {
		if err.IsCode(headErr, err.CodeNotFound) {
			return "", nil
		}
		return "", headErr
	}
	return hash, nil
}

// displayCommitsOneline prints the compact short-identity form
func displayCommitsOneline(entries []history.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s\n", ui.Hash(e.Hash.Short()), e.Commit.Summary())
	}
}

// displayCommitsDetailed shows commits in bordered boxes
func displayCommitsDetailed(entries []history.Entry) {
	fmt.Println(renderHeader(" Commit History "))
	fmt.Println()

	for i, e := range entries {
		var content strings.Builder

		content.WriteString(fmt.Sprintf("%s %s\n",
			colorYellow(ui.IconCommit), ui.Hash(e.Hash.String())))
		content.WriteString(fmt.Sprintf("%s %s\n",
			colorCyan(ui.IconAuthor), ui.AuthorStyle.Render(e.Commit.Author().String())))
		content.WriteString(fmt.Sprintf("%s %s\n",
			colorMagenta(ui.IconDate), ui.DateStyle.Render(e.Commit.Author().When.Format(time.RFC1123))))
		content.WriteString(ui.MessageStyle.Render("\n" + e.Commit.Message()))

		fmt.Println(ui.CommitBox(content.String()))

		if i < len(entries)-1 {
			fmt.Println("  " + ui.IconSeparator)
		}
	}
}

// displayCommitsAsTable shows commits in a compact table
func displayCommitsAsTable(entries []history.Entry) {
	fmt.Println(renderHeader(" Commit History "))
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Commit", "Author", "Date", "Message")

	for _, e := range entries {
		message := e.Commit.Summary()
		if len(message) > 50 {
			message = message[:47] + "..."
		}

		table.Append(
			colorYellow(e.Hash.Short()),
			colorCyan(e.Commit.Author().Name),
			colorMagenta(e.Commit.Author().When.Format("2006-01-02 15:04")),
			message,
		)
	}

	table.Render()
}
