package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newShowRefCmd() *cobra.Command {
	var useTable bool

	cmd := &cobra.Command{
		Use:   "show-ref",
		Short: "List references and their targets",
		Long: `List every reference under refs/ with the identity it resolves to,
sorted by name. Symbolic references are shown fully resolved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, repoErr := findRepository()
			if repoErr != nil {
				return repoErr
			}

			allRefs, listErr := r.Refs.List("")
			if listErr != nil {
				return listErr
			}

			if useTable {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Reference", "Target")
				for _, ref := range allRefs {
					table.Append(colorCyan(ref.Name), colorYellow(ref.Hash.String()))
				}
				table.Render()
				return nil
			}

			for _, ref := range allRefs {
				fmt.Printf("%s %s\n", ref.Hash, ref.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display references in table format")

	return cmd
}
