package main

import (
	"context"
	"fmt"
	"log"

	"github.com/kaw393939/metavis"
)

func main() {
	flow, err := metavis.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	res, err := flow.Summarize(context.Background(), metavis.Request{
		RunID:  "2025-08-25T10-33",
		OutDir: "test_outputs/metrics/2025-08-25T10-33",
	})
	if err != nil {
		log.Fatalf("summarize: %v", err)
	}

	fmt.Printf("archived %d events (%d probes) to %s\n",
		res.EventCount, res.ProbeCount, res.Paths.Summary)
}
