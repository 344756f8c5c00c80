package batch

import (
	"fmt"
	"os"
	"time"
)

// DefaultLimit caps how many files one batch call will process.
const DefaultLimit = 10

// Config holds the settings for one batch run.
type Config struct {
	// Limit caps the number of files processed; 0 means DefaultLimit.
	Limit int

	// Progress, when set, is called after each file completes.
	Progress ProgressFunc
}

// ProgressFunc receives per-file completion events in processing order.
type ProgressFunc func(done, total int, path string, err error)

func (c *Config) limit() int {
	if c == nil || c.Limit <= 0 {
		return DefaultLimit
	}
	return c.Limit
}

// Result holds the outcome of a batch run. Outcomes keep the discovery
// order of the files regardless of individual failures.
type Result struct {
	Dir      string        `json:"dir"`
	Outcomes []FileOutcome `json:"outcomes"`
	Total    int           `json:"total"`

	Succeeded int           `json:"succeeded"`
	Duration  time.Duration `json:"duration_ns"`
}

// FormatResults renders the batch result in the given format ("json" or text).
func (r *Result) FormatResults(format string) (string, error) {
	return formatResults(r, format)
}

// SaveResults writes the formatted result to a file, or stdout when
// outputFile is empty.
func (r *Result) SaveResults(format, outputFile string) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprint(os.Stdout, output)
	return err
}
