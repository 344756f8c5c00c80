// Package batch provides folder-level document processing: discovery,
// per-file recognition and extraction, and aggregate reporting.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atlas-ocr/atlas/internal/pipeline"
)

// ProcessBatch discovers processable files in dir and runs each through the
// pipeline. Per-file failures are recorded in the result, not returned.
func ProcessBatch(ctx context.Context, p *pipeline.Pipeline, dir string, config *Config) (*Result, error) {
	if p == nil {
		return nil, errors.New("nil pipeline")
	}

	files, err := discoverFiles(dir, config.limit())
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no processable files found in %s", dir)
	}

	var progress ProgressFunc
	if config != nil {
		progress = config.Progress
	}

	start := time.Now()
	outcomes := processFiles(ctx, p, files, progress)

	succeeded := 0
	for _, o := range outcomes {
		if !o.Failed() {
			succeeded++
		}
	}

	return &Result{
		Dir:       dir,
		Outcomes:  outcomes,
		Total:     len(outcomes),
		Succeeded: succeeded,
		Duration:  time.Since(start),
	}, nil
}
