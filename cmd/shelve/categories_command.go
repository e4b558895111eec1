package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"shelve/internal/classify"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the active extension-to-category table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			active := cfg.CategoryTable()
			builtin := classify.DefaultTable()

			exts := make([]string, 0, len(active))
			for ext := range active {
				exts = append(exts, ext)
			}
			sort.Strings(exts)

			rows := make([][]string, 0, len(exts))
			for _, ext := range exts {
				origin := "built-in"
				if label, ok := builtin[ext]; !ok || label != active[ext] {
					origin = "override"
				}
				rows = append(rows, []string{ext, active[ext], origin})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Extension", "Category", "Source"}, rows, nil))
			fmt.Fprintf(out, "Unmatched extensions are filed under %s\n", cfg.FallbackLabel())
			return nil
		},
	}
}
