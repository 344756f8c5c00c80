package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atlas-ocr/atlas/internal/extract"
	"github.com/atlas-ocr/atlas/internal/ocr"
	"github.com/atlas-ocr/atlas/internal/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine is a canned OCR collaborator for pipeline tests.
type fakeEngine struct {
	result   *ocr.Result
	batch    *ocr.BatchResult
	profile  *ocr.Profile
	err      error
	lastHint string
}

func (f *fakeEngine) Recognize(_ context.Context, path, hint string) (*ocr.Result, error) {
	f.lastHint = hint
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	res.FilePath = path
	return &res, nil
}

func (f *fakeEngine) RecognizeBatch(_ context.Context, _, hint string) (*ocr.BatchResult, error) {
	f.lastHint = hint
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func (f *fakeEngine) Analyze(_ context.Context, _ string) (*ocr.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeAnalyzer struct {
	profile *ocr.Profile
	err     error
}

func (f *fakeAnalyzer) Profile(_ string) (*ocr.Profile, error) {
	return f.profile, f.err
}

func okResult() *ocr.Result {
	return &ocr.Result{
		FullText: "ABC Traders Pvt Ltd Purchase Order PO No: 123 Total: $150",
		Rows: []ocr.Row{
			{{Text: "ABC", Confidence: 0.9}, {Text: "Traders", Confidence: 0.9}, {Text: "Pvt", Confidence: 0.9}, {Text: "Ltd", Confidence: 0.9}},
		},
		AvgConfidence:   0.9,
		TotalTextBlocks: 4,
		Success:         true,
	}
}

func writeTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o600))
	return path
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := New(nil, nil, "")
	require.Error(t, err)
}

func TestProcessImage(t *testing.T) {
	engine := &fakeEngine{result: okResult()}
	p, err := New(engine, nil, "purchase_order")
	require.NoError(t, err)

	path := writeTempFile(t, "scan.jpg")
	fr, err := p.ProcessImage(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, path, fr.Path)
	assert.Equal(t, "123", fr.Document.PONumber)
	assert.Equal(t, extract.TypePurchaseOrder, fr.Document.DocumentType)
	assert.Equal(t, "purchase_order", engine.lastHint)
}

func TestProcessImage_MissingFile(t *testing.T) {
	p, err := New(&fakeEngine{result: okResult()}, nil, "")
	require.NoError(t, err)

	_, err = p.ProcessImage(context.Background(), "/nonexistent/scan.jpg")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}

func TestProcessImage_CollaboratorFailure(t *testing.T) {
	engine := &fakeEngine{err: &ocr.CollaboratorError{Message: "single call failed: boom"}}
	p, err := New(engine, nil, "")
	require.NoError(t, err)

	_, err = p.ProcessImage(context.Background(), writeTempFile(t, "scan.png"))

	require.Error(t, err)
	var collabErr *ocr.CollaboratorError
	assert.ErrorAs(t, err, &collabErr)
}

func TestProcessImage_SourceFailurePreservesMessage(t *testing.T) {
	engine := &fakeEngine{result: &ocr.Result{Success: false, Error: "cannot open image file"}}
	p, err := New(engine, nil, "")
	require.NoError(t, err)

	_, err = p.ProcessImage(context.Background(), writeTempFile(t, "broken.jpg"))

	require.Error(t, err)
	var srcErr *extract.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "cannot open image file", srcErr.Message)
}

func TestAnalyzePDF_PrefersLocalAnalyzer(t *testing.T) {
	engine := &fakeEngine{profile: &ocr.Profile{HasNativeText: false}}
	analyzer := &fakeAnalyzer{profile: &ocr.Profile{
		FileSizeMB:    1.2,
		PageCount:     3,
		HasNativeText: true,
		HasImages:     true,
	}}
	p, err := New(engine, analyzer, "")
	require.NoError(t, err)

	rec, err := p.AnalyzePDF(context.Background(), writeTempFile(t, "doc.pdf"))

	require.NoError(t, err)
	assert.Equal(t, pdf.StrategyHybrid, rec.Strategy)
	assert.Equal(t, 3, rec.PageCount)
}

func TestAnalyzePDF_FallsBackToEngine(t *testing.T) {
	engine := &fakeEngine{profile: &ocr.Profile{HasNativeText: true, HasImages: false}}
	p, err := New(engine, nil, "")
	require.NoError(t, err)

	rec, err := p.AnalyzePDF(context.Background(), writeTempFile(t, "doc.pdf"))

	require.NoError(t, err)
	assert.Equal(t, pdf.StrategyTextExtraction, rec.Strategy)
}

func TestFormatDocumentReport(t *testing.T) {
	engine := &fakeEngine{result: okResult()}
	p, err := New(engine, nil, "")
	require.NoError(t, err)

	fr, err := p.ProcessImage(context.Background(), writeTempFile(t, "scan.jpg"))
	require.NoError(t, err)

	report := FormatDocumentReport(fr)

	assert.Contains(t, report, "Document Type: Purchase Order")
	assert.Contains(t, report, "PO Number: 123")
	assert.Contains(t, report, "Vendor: ABC Traders Pvt Ltd")
	assert.Contains(t, report, "Total Amount: 150")
	assert.Contains(t, report, "Date: Not detected")
}

func TestFormatAnalysisReport(t *testing.T) {
	rec := pdf.Recommend(ocr.Profile{FileSizeMB: 2.5, PageCount: 4})

	report := FormatAnalysisReport("/tmp/doc.pdf", &rec)

	assert.Contains(t, report, "PDF Analysis: doc.pdf")
	assert.Contains(t, report, "Recommended Strategy: ocr")
	assert.Contains(t, report, "Pages: 4")
}

func TestToJSON(t *testing.T) {
	_, err := ToJSON(nil)
	require.Error(t, err)

	engine := &fakeEngine{result: okResult()}
	p, err := New(engine, nil, "")
	require.NoError(t, err)
	fr, err := p.ProcessImage(context.Background(), writeTempFile(t, "scan.jpg"))
	require.NoError(t, err)

	s, err := ToJSON(fr)
	require.NoError(t, err)
	assert.Contains(t, s, `"document_type": "Purchase Order"`)
}
