package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atlas-ocr/atlas/internal/ocr"
	"github.com/atlas-ocr/atlas/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine recognizes anything except files whose name contains "bad".
type fakeEngine struct{}

func (fakeEngine) Recognize(_ context.Context, path, _ string) (*ocr.Result, error) {
	if strings.Contains(filepath.Base(path), "bad") {
		return &ocr.Result{Success: false, Error: "unreadable scan"}, nil
	}
	return &ocr.Result{
		FilePath: path,
		FullText: "ABC Traders Purchase Order PO No: 42 Total: $99",
		Rows: []ocr.Row{
			{{Text: "ABC", Confidence: 0.9}, {Text: "Traders", Confidence: 0.9}},
		},
		AvgConfidence:   0.9,
		TotalTextBlocks: 2,
		Success:         true,
	}, nil
}

func (fakeEngine) RecognizeBatch(_ context.Context, _, _ string) (*ocr.BatchResult, error) {
	return &ocr.BatchResult{Success: true}, nil
}

func (fakeEngine) Analyze(_ context.Context, _ string) (*ocr.Profile, error) {
	return &ocr.Profile{}, nil
}

func newTestPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	p, err := pipeline.New(fakeEngine{}, nil, "")
	require.NoError(t, err)
	return p
}

func populateDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o600))
	}
	return dir
}

func TestProcessBatch(t *testing.T) {
	dir := populateDir(t, "a.jpg", "b.png", "notes.txt")
	p := newTestPipeline(t)

	res, err := ProcessBatch(context.Background(), p, dir, &Config{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, "a.jpg", filepath.Base(res.Outcomes[0].Path))
	assert.Equal(t, "42", res.Outcomes[0].Result.Document.PONumber)
}

func TestProcessBatch_FailureIsolation(t *testing.T) {
	dir := populateDir(t, "a.jpg", "bad.jpg", "c.jpg")
	p := newTestPipeline(t)

	res, err := ProcessBatch(context.Background(), p, dir, &Config{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Succeeded)

	// Order follows discovery regardless of failures.
	assert.False(t, res.Outcomes[0].Failed())
	assert.True(t, res.Outcomes[1].Failed())
	assert.Contains(t, res.Outcomes[1].Error, "unreadable scan")
	assert.False(t, res.Outcomes[2].Failed())
}

func TestProcessBatch_RespectsLimit(t *testing.T) {
	dir := populateDir(t, "a.jpg", "b.jpg", "c.jpg", "d.jpg")
	p := newTestPipeline(t)

	res, err := ProcessBatch(context.Background(), p, dir, &Config{Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
}

func TestProcessBatch_ReportsProgress(t *testing.T) {
	dir := populateDir(t, "a.jpg", "bad.jpg")
	p := newTestPipeline(t)

	type event struct {
		done, total int
		failed      bool
	}
	var events []event
	cfg := &Config{Progress: func(done, total int, _ string, err error) {
		events = append(events, event{done, total, err != nil})
	}}

	_, err := ProcessBatch(context.Background(), p, dir, cfg)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, event{1, 2, false}, events[0])
	assert.Equal(t, event{2, 2, true}, events[1])
}

func TestProcessBatch_EmptyDir(t *testing.T) {
	dir := populateDir(t, "notes.txt")
	p := newTestPipeline(t)

	_, err := ProcessBatch(context.Background(), p, dir, &Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no processable files")
}

func TestProcessBatch_MissingDir(t *testing.T) {
	p := newTestPipeline(t)

	_, err := ProcessBatch(context.Background(), p, "/nonexistent/dir", &Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}
