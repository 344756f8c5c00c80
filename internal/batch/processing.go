package batch

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/atlas-ocr/atlas/internal/pipeline"
)

// FileOutcome ties one file to its processing result or its failure. A
// failed file never aborts the rest of the batch.
type FileOutcome struct {
	Path   string               `json:"path"`
	Result *pipeline.FileResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// Failed reports whether this file's processing failed.
func (o FileOutcome) Failed() bool {
	return o.Error != ""
}

// processFiles runs recognition and extraction for each file in order,
// isolating per-file failures.
func processFiles(ctx context.Context, p *pipeline.Pipeline, files []string, progress ProgressFunc) []FileOutcome {
	outcomes := make([]FileOutcome, 0, len(files))
	for i, path := range files {
		outcome := FileOutcome{Path: path}

		var err error
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			outcome.Result, err = p.ProcessPDF(ctx, path)
		} else {
			outcome.Result, err = p.ProcessImage(ctx, path)
		}
		if err != nil {
			outcome.Error = err.Error()
		}

		outcomes = append(outcomes, outcome)
		if progress != nil {
			progress(i+1, len(files), path, err)
		}
	}
	return outcomes
}
