package batch

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// formatResults renders a batch result in the requested format.
func formatResults(r *Result, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(r)
	default: // text
		return formatText(r), nil
	}
}

func formatJSON(r *Result) (string, error) {
	bts, err := json.MarshalIndent(r, "", "  ")
	return string(bts), err
}

func formatText(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch Processing: %s\n", r.Dir)
	fmt.Fprintf(&b, "Processed %d/%d files successfully\n", r.Succeeded, r.Total)

	for _, outcome := range r.Outcomes {
		fmt.Fprintf(&b, "\n# %s\n", filepath.Base(outcome.Path))
		if outcome.Failed() {
			fmt.Fprintf(&b, "  Error: %s\n", outcome.Error)
			continue
		}
		doc := outcome.Result.Document
		fmt.Fprintf(&b, "  Document Type: %s\n", doc.DocumentType)
		if doc.PONumber != "" {
			fmt.Fprintf(&b, "  PO Number: %s\n", doc.PONumber)
		}
		if doc.VendorName != "" {
			fmt.Fprintf(&b, "  Vendor: %s\n", doc.VendorName)
		}
		if doc.TotalAmount != "" {
			fmt.Fprintf(&b, "  Total Amount: %s\n", doc.TotalAmount)
		}
		fmt.Fprintf(&b, "  Confidence: %.3f\n", doc.ConfidenceScore)
	}
	return b.String()
}

// FormatListing renders the folder listing report.
func FormatListing(dir string, entries []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processable files in %s (%d):\n", dir, len(entries))
	if len(entries) == 0 {
		b.WriteString("  (none)\n")
		return b.String()
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "  %s  %.1f KB  %s\n", e.Name, e.SizeKB, e.Modified.Format("2006-01-02 15:04"))
	}
	return b.String()
}
