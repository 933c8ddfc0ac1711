package main

import (
	"context"
	"fmt"
	"log"

	"github.com/kaw393939/metavis/pkg/metavis"
)

func main() {
	flow, err := metavis.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	callback := func(rec metavis.RunRecord) error {
		fmt.Printf("run=%s invocation=%s events=%d probes=%d out=%s\n",
			rec.RunID,
			rec.InvocationID,
			rec.EventCount,
			rec.ProbeCount,
			rec.OutDir,
		)
		return nil
	}

	_, err = flow.Summarize(context.Background(), metavis.Request{
		RunID:  "2025-08-25T10-33",
		OutDir: "test_outputs/metrics/2025-08-25T10-33",
	}, metavis.StreamOutCallback("stdout", callback))
	if err != nil {
		log.Fatalf("summarize: %v", err)
	}
}
