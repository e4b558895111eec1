package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"shelve/internal/config"
	"shelve/internal/testsupport"
)

// writeTestConfig serializes cfg into a TOML file under the test base
// directory and returns the path for --config. Logging is pinned to the
// error level so organize runs stay quiet on stderr.
func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()

	var content strings.Builder
	fmt.Fprintf(&content, "[paths]\nsource = %q\ndest = %q\nlog_dir = %q\n",
		cfg.Paths.Source, cfg.Paths.Dest, cfg.Paths.LogDir)
	fmt.Fprintf(&content, "\n[organize]\ncopy = %t\nby_date = %t\nskip_duplicates = %t\nsniff_content = %t\n",
		cfg.Organize.Copy, cfg.Organize.ByDate, cfg.Organize.SkipDuplicates, cfg.Organize.SniffContent)
	fmt.Fprint(&content, "\n[logging]\nlevel = \"error\"\n")
	if len(cfg.Categories) > 0 {
		fmt.Fprint(&content, "\n[categories]\n")
		keys := make([]string, 0, len(cfg.Categories))
		for key := range cfg.Categories {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&content, "%q = %q\n", key, cfg.Categories[key])
		}
	}

	path := filepath.Join(testsupport.BaseDir(cfg), "shelve.toml")
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// SetArgs must see a non-nil slice or cobra falls back to os.Args.
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
