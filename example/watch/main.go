package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/kaw393939/metavis"
)

func main() {
	cfg, err := metavis.LoadConfig("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	reporter, err := metavis.New(cfg)
	if err != nil {
		log.Fatalf("build reporter: %v", err)
	}
	defer reporter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = reporter.Watch(ctx, metavis.Request{
		RunID:  "2025-08-25T10-33",
		OutDir: "test_outputs/metrics/2025-08-25T10-33",
	})
	if err != nil && err != context.Canceled {
		log.Fatalf("watch exited: %v", err)
	}
}
