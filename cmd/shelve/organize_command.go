package main

import (
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/organize"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string
	var destFlag string
	var copyFlag bool
	var dryRunFlag bool
	var byDateFlag bool
	var skipDuplicatesFlag bool
	var sniffFlag bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Scan the source tree and shelve every file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPathFlags(cfg, sourceFlag, destFlag); err != nil {
				return err
			}

			// Explicit boolean flags override the [organize] section in
			// either direction; unset flags leave the file values alone.
			set := cmd.Flags().Changed
			if set("copy") {
				cfg.Organize.Copy = copyFlag
			}
			if set("by-date") {
				cfg.Organize.ByDate = byDateFlag
			}
			if set("skip-duplicates") {
				cfg.Organize.SkipDuplicates = skipDuplicatesFlag
			}
			if set("sniff") {
				cfg.Organize.SniffContent = sniffFlag
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			summary, err := organize.New(cfg, logger).Run(runCtx, organize.Options{DryRun: dryRunFlag})
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&sourceFlag, "source", "s", "", "Directory to scan (overrides paths.source)")
	flags.StringVarP(&destFlag, "dest", "d", "", "Directory to shelve into (overrides paths.dest)")
	flags.BoolVar(&copyFlag, "copy", false, "Copy files instead of moving them")
	flags.BoolVar(&dryRunFlag, "dry-run", false, "Report intended placements without touching any file")
	flags.BoolVar(&byDateFlag, "by-date", false, "Insert the run date between category and extension folders")
	flags.BoolVar(&skipDuplicatesFlag, "skip-duplicates", false, "Skip files whose content already sits in the target folder")
	flags.BoolVar(&sniffFlag, "sniff", false, "Detect categories for unknown extensions from file content")

	return cmd
}

// applyPathFlags folds per-invocation source and destination overrides into
// the loaded configuration, expanding ~ the same way the file loader does.
func applyPathFlags(cfg *config.Config, source, dest string) error {
	if path := strings.TrimSpace(source); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return fmt.Errorf("resolve --source: %w", err)
		}
		cfg.Paths.Source = expanded
	}
	if path := strings.TrimSpace(dest); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return fmt.Errorf("resolve --dest: %w", err)
		}
		cfg.Paths.Dest = expanded
	}
	return nil
}

func printSummary(out io.Writer, summary organize.Summary) {
	if summary.DryRun {
		fmt.Fprintln(out, "Dry run: no files were touched")
	}
	rows := [][]string{
		{"Processed", strconv.Itoa(summary.Processed)},
		{"Moved", strconv.Itoa(summary.Moved)},
		{"Copied", strconv.Itoa(summary.Copied)},
		{"Skipped", strconv.Itoa(summary.Skipped)},
	}
	if summary.Failed > 0 {
		rows = append(rows, []string{"Failed", strconv.Itoa(summary.Failed)})
	}
	rows = append(rows,
		[]string{"Transferred", humanize.IBytes(uint64(summary.Bytes))},
		[]string{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
	)
	fmt.Fprintln(out, renderTable(out, []string{"Counter", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
