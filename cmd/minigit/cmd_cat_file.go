package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minigit-vcs/minigit/pkg/objects"
	"github.com/minigit-vcs/minigit/pkg/objects/commit"
	"github.com/minigit-vcs/minigit/pkg/objects/tag"
	"github.com/minigit-vcs/minigit/pkg/objects/tree"
)

func newCatFileCmd() *cobra.Command {
	var showType bool
	var showSize bool
	var prettyPrint bool

	cmd := &cobra.Command{
		Use:   "cat-file (-t|-s|-p) <revision>",
		Short: "Inspect a stored object",
		Long: `Inspect the object a revision resolves to: its kind (-t), its payload
size (-s), or its content pretty-printed (-p). Trees print one entry per
line; blobs print raw content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := 0
			for _, on := range []bool{showType, showSize, prettyPrint} {
				if on {
					modes++
				}
			}
			if modes != 1 {
				return fmt.Errorf("exactly one of -t, -s, -p is required")
			}

			r, repoErr := findRepository()
			if repoErr != nil {
				return repoErr
			}

			ctx := context.Background()
			hash, resolveErr := r.Resolver().Resolve(ctx, args[0])
			if resolveErr != nil {
				return resolveErr
			}

			obj, getErr := r.Objects.Get(ctx, hash)
			if getErr != nil {
				return getErr
			}

			switch {
			case showType:
				fmt.Println(obj.Type())
			case showSize:
				size, sizeErr := obj.Size()
				if sizeErr != nil {
					return sizeErr
				}
				fmt.Println(size)
			case prettyPrint:
				return prettyPrintObject(obj)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "Show the object's kind")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "Show the object's payload size")
	cmd.Flags().BoolVarP(&prettyPrint, "pretty", "p", false, "Pretty-print the object's content")

	return cmd
}

// prettyPrintObject renders an object's content in a kind-appropriate form
func prettyPrintObject(obj objects.Object) error {
	switch typed := obj.(type) {
	case *tree.Tree:
		for _, entry := range typed.Entries() {
			fmt.Printf("%s %s %s\t%s\n", entry.Mode(), entry.TargetType(), entry.SHA(), entry.Name())
		}
		return nil
	case *commit.Commit, *tag.Tag:
		content, contentErr := obj.Content()
		if contentErr != nil {
			return contentErr
		}
		fmt.Println(string(content))
		return nil
	default:
		content, contentErr := obj.Content()
		if contentErr != nil {
			return contentErr
		}
		_, writeErr := os.Stdout.Write(content)
		return writeErr
	}
}
