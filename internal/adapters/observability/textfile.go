package observability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/common/expfmt"
)

// WriteTextfile snapshots the registry in Prometheus text exposition format,
// the shape the node_exporter textfile collector ingests. A batch tool has
// nothing to scrape, so the snapshot after each pass stands in for an
// endpoint.
func (p *PromObs) WriteTextfile(path string) error {
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("observability: gather: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("observability: encode %s: %w", mf.GetName(), err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("observability: prepare %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("observability: write %s: %w", path, err)
	}
	return nil
}
