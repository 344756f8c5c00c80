package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atlas-ocr/atlas/internal/extract"
	"github.com/atlas-ocr/atlas/internal/ocr"
	"github.com/atlas-ocr/atlas/internal/pdf"
)

// Analyzer produces a PDF content profile without recognition work.
type Analyzer interface {
	Profile(path string) (*ocr.Profile, error)
}

// Pipeline composes the OCR collaborator, the PDF analyzer, and the field
// extractor into the exposed operations. It carries no extraction logic of
// its own.
type Pipeline struct {
	engine   ocr.Engine
	analyzer Analyzer
	hint     string
}

// New creates a pipeline. The analyzer may be nil, in which case PDF
// analysis falls back to the collaborator's analyze mode.
func New(engine ocr.Engine, analyzer Analyzer, documentTypeHint string) (*Pipeline, error) {
	if engine == nil {
		return nil, errors.New("nil ocr engine")
	}
	return &Pipeline{engine: engine, analyzer: analyzer, hint: documentTypeHint}, nil
}

// FileResult ties one processed unit to its OCR result and the structured
// document derived from it.
type FileResult struct {
	Path     string            `json:"path"`
	OCR      *ocr.Result       `json:"ocr"`
	Document *extract.Document `json:"document"`
}

// ProcessImage runs recognition and extraction for a single image file.
func (p *Pipeline) ProcessImage(ctx context.Context, path string) (*FileResult, error) {
	return p.processUnit(ctx, path)
}

// ProcessPDF runs recognition and extraction for a PDF. The collaborator
// applies its own per-page strategy internally; the returned processing
// method is treated as authoritative.
func (p *Pipeline) ProcessPDF(ctx context.Context, path string) (*FileResult, error) {
	return p.processUnit(ctx, path)
}

func (p *Pipeline) processUnit(ctx context.Context, path string) (*FileResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	res, err := p.engine.Recognize(ctx, path, p.hint)
	if err != nil {
		return nil, err
	}

	doc, err := extract.Extract(res)
	if err != nil {
		return nil, err
	}

	return &FileResult{Path: path, OCR: res, Document: doc}, nil
}

// AnalyzePDF profiles a PDF and returns a processing recommendation. No
// recognition work is performed.
func (p *Pipeline) AnalyzePDF(ctx context.Context, path string) (*pdf.Recommendation, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	profile, err := p.profile(ctx, path)
	if err != nil {
		return nil, err
	}

	rec := pdf.Recommend(*profile)
	return &rec, nil
}

func (p *Pipeline) profile(ctx context.Context, path string) (*ocr.Profile, error) {
	if p.analyzer != nil {
		return p.analyzer.Profile(path)
	}
	return p.engine.Analyze(ctx, path)
}

// Engine exposes the collaborator for callers that issue batch requests.
func (p *Pipeline) Engine() ocr.Engine {
	return p.engine
}

// DocumentTypeHint returns the hint passed through to the collaborator.
func (p *Pipeline) DocumentTypeHint() string {
	return p.hint
}
