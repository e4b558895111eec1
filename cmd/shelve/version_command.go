package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the shelve version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				fmt.Fprintln(out, "shelve (version unknown)")
				return nil
			}
			fmt.Fprintf(out, "shelve %s (%s)\n", info.Main.Version, info.GoVersion)
			return nil
		},
	}
}
