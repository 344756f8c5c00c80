package ocr

import (
	"errors"
	"fmt"
	"strings"
)

// TextBlock is a single recognized text fragment with its confidence and
// position within the source page.
type TextBlock struct {
	Text        string  `json:"text"`
	Confidence  float64 `json:"confidence"`
	RowIndex    int     `json:"row_index"`
	ColPosition float64 `json:"col_position"`
}

// Row is a visually grouped sequence of text blocks sharing one printed line,
// ordered left to right.
type Row []TextBlock

// JoinedText returns the row's blocks joined with single spaces.
func (r Row) JoinedText() string {
	parts := make([]string, 0, len(r))
	for _, b := range r {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, " ")
}

// Result is the OCR collaborator's output for one processed unit (an image
// or the combined pages of a PDF). Rows are in top-to-bottom document order;
// FullText is the rows joined in reading order.
type Result struct {
	FileName         string  `json:"file_name,omitempty"`
	FilePath         string  `json:"file_path,omitempty"`
	FullText         string  `json:"full_text"`
	Rows             []Row   `json:"rows"`
	AvgConfidence    float64 `json:"avg_confidence"`
	TotalTextBlocks  int     `json:"total_text_blocks"`
	PageCount        int     `json:"page_count,omitempty"`
	ProcessingMethod string  `json:"processing_method,omitempty"`
	Success          bool    `json:"success"`
	Error            string  `json:"error,omitempty"`
}

// BatchResult is the collaborator's output for a folder-mode call.
type BatchResult struct {
	Success bool      `json:"success"`
	Results []*Result `json:"results"`
	Error   string    `json:"error,omitempty"`
}

// Profile describes a PDF's content makeup, derived without any recognition
// work. Consumed by the strategy selector.
type Profile struct {
	FileSizeMB    float64 `json:"file_size_mb"`
	PageCount     int     `json:"page_count"`
	HasNativeText bool    `json:"has_native_text"`
	HasImages     bool    `json:"has_images"`
}

// Validate performs consistency checks on a successful result.
func (r *Result) Validate() error {
	if r == nil {
		return errors.New("nil result")
	}
	if !r.Success {
		return nil
	}
	if r.AvgConfidence < 0 || r.AvgConfidence > 1 {
		return fmt.Errorf("avg confidence %.3f out of range", r.AvgConfidence)
	}
	blocks := 0
	for i, row := range r.Rows {
		for _, b := range row {
			if b.Confidence < 0 || b.Confidence > 1 {
				return fmt.Errorf("row %d block confidence %.3f out of range", i, b.Confidence)
			}
			blocks++
		}
	}
	if r.TotalTextBlocks != blocks {
		return fmt.Errorf("total_text_blocks %d does not match %d blocks in rows", r.TotalTextBlocks, blocks)
	}
	return nil
}
