package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var showPath string

// showCmd renders a stored summary to the terminal.
var showCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Render a run's summary.md in the terminal",
	Long: `Looks the run up in the configured metrics directory and renders its
summary.md with terminal styling. Pass --path to render an arbitrary summary
file instead. Set NO_COLOR to get the raw Markdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	target := showPath
	if target == "" {
		if len(args) == 0 {
			return fmt.Errorf("provide a run id or --path")
		}
		target = filepath.Join(cfg.Index.Dir, args[0], "summary.md")
	}

	raw, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("read summary: %w", err)
	}

	fmt.Print(renderMarkdown(string(raw)))
	return nil
}

// renderMarkdown styles Markdown for the terminal, falling back to the raw
// text when styling is disabled or fails.
func renderMarkdown(content string) string {
	if os.Getenv("NO_COLOR") != "" {
		return content
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
