package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var runsLimit int

// runsCmd lists the cumulative run index, newest first.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List summarized runs from the cumulative index",
	RunE:  runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	path := filepath.Join(cfg.Index.Dir, "README.md")
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("No runs summarized yet.")
			return nil
		}
		return fmt.Errorf("read index: %w", err)
	}

	entries := parseRunEntries(string(raw))
	if len(entries) == 0 {
		fmt.Println("No runs summarized yet.")
		return nil
	}

	shown := entries
	if runsLimit > 0 && runsLimit < len(entries) {
		shown = entries[:runsLimit]
	}
	for _, e := range shown {
		fmt.Println(e)
	}
	if len(shown) < len(entries) {
		fmt.Printf("(%d of %d runs shown)\n", len(shown), len(entries))
	}
	return nil
}

// parseRunEntries pulls the entry lines out of the Runs section. Indexes
// that lost their section marker fall back to matching entry-shaped lines
// anywhere in the file, mirroring how new entries are appended there.
func parseRunEntries(content string) []string {
	lines := strings.Split(content, "\n")

	var entries []string
	inRuns, sawHeading := false, false
	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			inRuns = strings.TrimSpace(line) == "## Runs"
			sawHeading = sawHeading || inRuns
			continue
		}
		if inRuns && strings.HasPrefix(line, "- ") {
			entries = append(entries, line)
		}
	}
	if sawHeading {
		return entries
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "- `") {
			entries = append(entries, line)
		}
	}
	return entries
}
