package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atlas-ocr/atlas/internal/pdf"
)

const notDetected = "Not detected"

// ToJSON serializes a file result to pretty JSON.
func ToJSON(fr *FileResult) (string, error) {
	if fr == nil {
		return "", errors.New("nil result")
	}
	b, err := json.MarshalIndent(fr, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FormatDocumentReport renders the structured-document report for one
// processed unit.
func FormatDocumentReport(fr *FileResult) string {
	var b strings.Builder
	doc := fr.Document

	fmt.Fprintf(&b, "Document Analysis: %s\n\n", filepath.Base(fr.Path))
	fmt.Fprintf(&b, "Document Type: %s\n", doc.DocumentType)
	fmt.Fprintf(&b, "PO Number: %s\n", orDefault(doc.PONumber))
	fmt.Fprintf(&b, "Vendor: %s\n", orDefault(doc.VendorName))
	fmt.Fprintf(&b, "Date: %s\n", orDefault(doc.Date))
	fmt.Fprintf(&b, "Total Amount: %s\n", orDefault(doc.TotalAmount))

	if doc.VendorContact.Email != "" || doc.VendorContact.Phone != "" {
		b.WriteString("\nVendor Contact:\n")
		if doc.VendorContact.Email != "" {
			fmt.Fprintf(&b, "  Email: %s\n", doc.VendorContact.Email)
		}
		if doc.VendorContact.Phone != "" {
			fmt.Fprintf(&b, "  Phone: %s\n", doc.VendorContact.Phone)
		}
	}

	if len(doc.Items) > 0 {
		fmt.Fprintf(&b, "\nDetected Items (%d):\n", len(doc.Items))
		shown := doc.Items
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for i, item := range shown {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, item.Text)
		}
		if len(doc.Items) > 5 {
			fmt.Fprintf(&b, "  ... and %d more items\n", len(doc.Items)-5)
		}
	}

	fmt.Fprintf(&b, "\nOCR Confidence: %.3f\n", doc.ConfidenceScore)
	fmt.Fprintf(&b, "Text Blocks Processed: %d\n", fr.OCR.TotalTextBlocks)
	return b.String()
}

// FormatTextReport renders the raw recognition report for one processed unit.
func FormatTextReport(fr *FileResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "OCR Results for: %s\n\n", filepath.Base(fr.Path))
	fmt.Fprintf(&b, "Extracted %d text blocks\n", fr.OCR.TotalTextBlocks)
	fmt.Fprintf(&b, "Average confidence: %.3f\n", fr.OCR.AvgConfidence)
	if fr.OCR.ProcessingMethod != "" {
		fmt.Fprintf(&b, "Processing method: %s\n", fr.OCR.ProcessingMethod)
	}
	fmt.Fprintf(&b, "\nFull Text:\n%s\n", fr.OCR.FullText)
	return b.String()
}

// FormatAnalysisReport renders the analysis-only report for a PDF.
func FormatAnalysisReport(path string, rec *pdf.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PDF Analysis: %s\n\n", filepath.Base(path))
	fmt.Fprintf(&b, "File Size: %.1f MB\n", rec.FileSizeMB)
	fmt.Fprintf(&b, "Pages: %d\n", rec.PageCount)
	fmt.Fprintf(&b, "Recommended Strategy: %s\n", rec.Strategy)
	fmt.Fprintf(&b, "Reasoning: %s\n", rec.Reasoning)
	return b.String()
}

func orDefault(v string) string {
	if v == "" {
		return notDetected
	}
	return v
}
