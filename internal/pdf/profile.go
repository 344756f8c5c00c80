package pdf

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/atlas-ocr/atlas/internal/ocr"
)

const (
	// probePages limits how many leading pages are inspected for content type.
	probePages = 5

	// minNativeTextChars is the per-page threshold for significant vector text.
	minNativeTextChars = 50
)

// Profiler derives a content profile for a PDF without performing any
// recognition work. It answers the two questions the strategy selector
// needs: is there machine-readable text, and are there embedded images.
type Profiler struct{}

// NewProfiler creates a PDF profiler.
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Profile inspects the file and returns its content profile.
func (p *Profiler) Profile(path string) (*ocr.Profile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page count of %s: %w", path, err)
	}

	return &ocr.Profile{
		FileSizeMB:    float64(info.Size()) / (1024 * 1024),
		PageCount:     pageCount,
		HasNativeText: hasNativeText(path, pageCount),
		HasImages:     hasEmbeddedImages(path, pageCount),
	}, nil
}

// hasNativeText checks the leading pages for significant vector text. A
// page counts when its plain text exceeds minNativeTextChars; unreadable
// pages are skipped rather than failing the probe.
func hasNativeText(path string, pageCount int) bool {
	reader, err := pdf.Open(path)
	if err != nil {
		return false
	}

	limit := min(probePages, pageCount, reader.NumPage())
	for pageNum := 1; pageNum <= limit; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if len(strings.TrimSpace(text)) > minNativeTextChars {
			return true
		}
	}
	return false
}

// hasEmbeddedImages extracts images from the leading pages into a temp
// directory and reports whether any were found. Extraction failure means
// no image evidence, not a profiling error.
func hasEmbeddedImages(path string, pageCount int) bool {
	tempDir, err := os.MkdirTemp("", "pdf-probe-*")
	if err != nil {
		return false
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	limit := min(probePages, pageCount)
	pages := make([]string, 0, limit)
	for pageNum := 1; pageNum <= limit; pageNum++ {
		pages = append(pages, strconv.Itoa(pageNum))
	}

	if err := api.ExtractImagesFile(path, tempDir, pages, nil); err != nil {
		return false
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			return true
		}
	}
	return false
}
