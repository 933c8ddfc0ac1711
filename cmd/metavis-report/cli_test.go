package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	metavis "github.com/kaw393939/metavis"
)

func TestSummarizeCmd(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()

	logFile := filepath.Join(dir, "perf.jsonl")
	line := `{"runID":"runA","suite":"PerfSuite","test":"testDecode","avgMs":12.5}` + "\n"
	if err := os.WriteFile(logFile, []byte(line), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	cfg = metavis.DefaultConfig()
	cfg.Log.Path = logFile
	cfg.Log.RepoRoot = dir
	cfg.Index.Dir = filepath.Join(dir, "metrics")
	cfg.Logging.Level = "error"

	runID = "runA"
	outDir = filepath.Join(dir, "metrics", "runA")
	defer func() { runID, outDir, repoRoot, logPath, metricsOut = "", "", "", "", "" }()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	if err := runSummarize(cmd, nil); err != nil {
		t.Fatalf("runSummarize failed: %v", err)
	}

	events, err := os.ReadFile(filepath.Join(outDir, "events.jsonl"))
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if string(events) != line {
		t.Fatalf("events.jsonl = %q, want %q", events, line)
	}

	summary, err := os.ReadFile(filepath.Join(outDir, "summary.md"))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(summary), "| 12.50 |") {
		t.Fatalf("summary missing performance row:\n%s", summary)
	}

	index, err := os.ReadFile(filepath.Join(dir, "metrics", "README.md"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "- `runA`: `runA/summary.md`") {
		t.Fatalf("index missing run entry:\n%s", index)
	}
}

func TestParseRunEntries(t *testing.T) {
	content := strings.Join([]string{
		"# Metrics Runs",
		"",
		"## Files",
		"",
		"- not a run entry",
		"",
		"## Runs",
		"",
		"- `runB`: `runB/summary.md`",
		"- `runA`: `runA/summary.md`",
		"",
	}, "\n")

	entries := parseRunEntries(content)
	if len(entries) != 2 {
		t.Fatalf("entries = %v, want 2", entries)
	}
	if entries[0] != "- `runB`: `runB/summary.md`" {
		t.Fatalf("first entry = %q", entries[0])
	}
}

func TestParseRunEntriesWithoutMarker(t *testing.T) {
	content := "# Hand-rolled notes\n\n- `runC`: `runC/summary.md`\n"

	entries := parseRunEntries(content)
	if len(entries) != 1 || entries[0] != "- `runC`: `runC/summary.md`" {
		t.Fatalf("entries = %v", entries)
	}
}

func TestSelectBanner(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if selectBanner() != bannerPlain {
		t.Fatal("NO_COLOR should select the plain banner")
	}

	t.Setenv("NO_COLOR", "")
	if selectBanner() != bannerColor {
		t.Fatal("default banner should be the color one")
	}
}

func TestRenderMarkdownFallsBackToRawText(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	raw := "# Title\n\nbody\n"
	if got := renderMarkdown(raw); got != raw {
		t.Fatalf("renderMarkdown = %q, want raw text", got)
	}
}
