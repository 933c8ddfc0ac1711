package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kaw393939/metavis"
)

func main() {
	flow, err := metavis.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	history, records, closeRecords := metavis.NewChannelHistory("fanout", 8)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fanoutWorker("ingest", records)
	}()

	_, err = flow.Summarize(context.Background(), metavis.Request{
		RunID:  "2025-08-25T10-33",
		OutDir: "test_outputs/metrics/2025-08-25T10-33",
	}, metavis.StreamOutHistory(history))
	if err != nil {
		log.Fatalf("summarize: %v", err)
	}

	closeRecords()
	<-done
}

func fanoutWorker(name string, records <-chan metavis.RunRecord) {
	for rec := range records {
		fmt.Printf("[%s] forwarding run %s (%d events) at %s\n",
			name, rec.RunID, rec.EventCount, time.Now().Format(time.RFC3339))
		// TODO: forward to downstream DB/API.
	}
}
