package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// validateCmd loads the config and prints the resolved paths.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the config file without running anything",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	src := cfgFile
	if src == "" {
		src = "(built-in defaults)"
	}

	history := "disabled"
	if cfg.HistoryEnabled() {
		history = fmt.Sprintf("table %s", cfg.History.Table)
	}

	fmt.Printf("config %s looks good ✅\n", src)
	fmt.Printf("  log:      %s\n", cfg.Log.Path)
	fmt.Printf("  repo root: %s\n", cfg.Log.RepoRoot)
	fmt.Printf("  index:    %s\n", filepath.Join(cfg.Index.Dir, "README.md"))
	fmt.Printf("  history:  %s\n", history)
	fmt.Printf("  debounce: %s\n", cfg.WatchDebounce())
	return nil
}
