package pdf

import (
	"github.com/atlas-ocr/atlas/internal/ocr"
)

// Strategy represents the recommended processing approach for a PDF.
type Strategy int

const (
	// StrategyTextExtraction indicates machine-readable text should be read directly.
	StrategyTextExtraction Strategy = iota
	// StrategyOCR indicates full image-based recognition is required.
	StrategyOCR
	// StrategyHybrid indicates native text per page with OCR for image-bearing pages.
	StrategyHybrid
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyTextExtraction:
		return "text_extraction"
	case StrategyOCR:
		return "ocr"
	case StrategyHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the strategy as its string form.
func (s Strategy) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Recommendation is the selector's output: the chosen strategy, a
// human-readable justification, and the profile figures echoed unchanged
// for reporting. The selector applies no size or page-count policy; any
// admission limits belong to the caller.
type Recommendation struct {
	Strategy   Strategy `json:"recommended_strategy"`
	Reasoning  string   `json:"reasoning"`
	FileSizeMB float64  `json:"file_size_mb"`
	PageCount  int      `json:"page_count"`
}

// Recommend maps a PDF profile onto a processing strategy. This is a pure
// decision over the profile's two booleans.
func Recommend(p ocr.Profile) Recommendation {
	rec := Recommendation{FileSizeMB: p.FileSizeMB, PageCount: p.PageCount}
	switch {
	case p.HasNativeText && !p.HasImages:
		rec.Strategy = StrategyTextExtraction
		rec.Reasoning = "Machine-readable text present with no embedded images - text extraction is fast and fully accurate"
	case p.HasNativeText && p.HasImages:
		rec.Strategy = StrategyHybrid
		rec.Reasoning = "Both native text and images present - extract text per page and apply OCR to image-bearing pages"
	default:
		rec.Strategy = StrategyOCR
		rec.Reasoning = "No machine-readable text found - full image-based recognition required"
	}
	return rec
}
