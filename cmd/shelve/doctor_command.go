package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelve/internal/faults"
	"shelve/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string
	var destFlag string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured directories are ready for organizing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPathFlags(cfg, sourceFlag, destFlag); err != nil {
				return err
			}

			results := preflight.RunAll(cfg)

			failures := 0
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "pass"
				switch {
				case result.Passed:
				case result.Optional:
					status = "warn"
				default:
					status = "FAIL"
					failures++
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Check", "Status", "Detail"}, rows, nil))

			if failures > 0 {
				return faults.Wrap(faults.ErrValidation, "doctor", "preflight",
					fmt.Sprintf("%d required checks failed", failures), nil)
			}
			fmt.Fprintln(out, "Ready to organize")
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Directory to scan (overrides paths.source)")
	cmd.Flags().StringVarP(&destFlag, "dest", "d", "", "Directory to shelve into (overrides paths.dest)")

	return cmd
}
