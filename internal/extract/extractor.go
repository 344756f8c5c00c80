package extract

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/atlas-ocr/atlas/internal/ocr"
)

// DocumentType classifies the scanned document.
type DocumentType int

const (
	// TypeUnknown indicates no classifying phrase was found.
	TypeUnknown DocumentType = iota
	// TypePurchaseOrder indicates a purchase order document.
	TypePurchaseOrder
	// TypeInvoice indicates an invoice or bill.
	TypeInvoice
)

// String returns the human-readable document type.
func (t DocumentType) String() string {
	switch t {
	case TypePurchaseOrder:
		return "Purchase Order"
	case TypeInvoice:
		return "Invoice"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the type as its display string.
func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// LineItem is a candidate line-item row: the row's text joined with " | "
// plus a back-reference to the source row for downstream re-inspection.
type LineItem struct {
	Text string  `json:"text"`
	Row  ocr.Row `json:"source_row"`
}

// Contact holds vendor contact details found anywhere in the text.
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Document is the structured record derived from one OCR result. Optional
// fields are empty when no pattern matched; populated values are verbatim
// substrings of the source text, never fabricated.
type Document struct {
	DocumentType    DocumentType `json:"document_type"`
	PONumber        string       `json:"po_number,omitempty"`
	VendorName      string       `json:"vendor_name,omitempty"`
	Date            string       `json:"date,omitempty"`
	TotalAmount     string       `json:"total_amount,omitempty"`
	Items           []LineItem   `json:"items"`
	VendorContact   Contact      `json:"vendor_contact"`
	ConfidenceScore float64      `json:"confidence_score"`
}

// SourceError marks an extraction request whose input OCR result already
// signaled failure; the collaborator's message is carried verbatim.
type SourceError struct {
	Message string
}

func (e *SourceError) Error() string {
	return "source ocr result failed: " + e.Message
}

// maxLineItems caps the number of line-item candidates kept per document.
const maxLineItems = 20

// Extract derives a structured document record from an OCR result. If the
// result signals failure, a SourceError is returned and no pattern matching
// is performed. Field misses are not errors.
func Extract(res *ocr.Result) (*Document, error) {
	if res == nil {
		return nil, errors.New("nil ocr result")
	}
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "unspecified collaborator error"
		}
		return nil, &SourceError{Message: msg}
	}

	doc := &Document{
		DocumentType:    detectDocumentType(res.FullText),
		Date:            extractDate(res.FullText),
		TotalAmount:     extractTotalAmount(res.FullText),
		VendorName:      extractVendorName(res.Rows),
		Items:           extractLineItems(res.Rows),
		VendorContact:   extractContact(res.FullText),
		ConfidenceScore: res.AvgConfidence,
	}
	if v, ok := firstMatch(res.FullText, poNumberCascade); ok {
		doc.PONumber = v
	}
	return doc, nil
}

// detectDocumentType runs the case-insensitive phrase cascade. Purchase
// order phrases are checked before invoice phrases; first category wins.
func detectDocumentType(fullText string) DocumentType {
	lower := strings.ToLower(fullText)
	for _, phrase := range []string{"purchase order", "po no", "p.o."} {
		if strings.Contains(lower, phrase) {
			return TypePurchaseOrder
		}
	}
	for _, phrase := range []string{"invoice", "bill"} {
		if strings.Contains(lower, phrase) {
			return TypeInvoice
		}
	}
	return TypeUnknown
}

// extractDate returns the first match of the first date family that matches
// anywhere in the text; the numeric family is tried before month names.
func extractDate(fullText string) string {
	for _, family := range dateFamilies {
		if m := family.FindString(fullText); m != "" {
			return m
		}
	}
	return ""
}

// extractTotalAmount collects matches from both amount families, strips
// non-digit/non-separator characters, and keeps the last collected match.
// Documents conventionally place the grand total after itemized amounts;
// this is the legacy tie-break, not a correctness guarantee.
func extractTotalAmount(fullText string) string {
	var amounts []string
	for _, family := range amountFamilies {
		for _, m := range family.FindAllString(fullText, -1) {
			amounts = append(amounts, amountJunk.ReplaceAllString(m, ""))
		}
	}
	if len(amounts) == 0 {
		return ""
	}
	return amounts[len(amounts)-1]
}

// extractVendorName inspects only the first 5 rows. A row qualifies when its
// joined text is longer than 5 characters and carries none of the purchase
// order header phrases; the longest qualifying row wins, ties keeping the
// first encountered.
func extractVendorName(rows []ocr.Row) string {
	top := rows
	if len(top) > 5 {
		top = top[:5]
	}
	var best string
	for _, row := range top {
		joined := row.JoinedText()
		if len(joined) <= 5 {
			continue
		}
		lower := strings.ToLower(joined)
		if strings.Contains(lower, "purchase") || strings.Contains(lower, "order") ||
			strings.Contains(lower, "po no") {
			continue
		}
		if len(joined) > len(best) {
			best = joined
		}
	}
	return strings.TrimSpace(best)
}

// extractLineItems scans every row for item-like content: at least one
// digit, longer than 10 characters, and none of the header phrases.
// Qualifying rows are kept in document order, truncated to maxLineItems.
func extractLineItems(rows []ocr.Row) []LineItem {
	var items []LineItem
	for _, row := range rows {
		joined := row.JoinedText()
		lower := strings.ToLower(joined)
		if !digitPattern.MatchString(lower) || len(lower) <= 10 {
			continue
		}
		if strings.Contains(lower, "po no") || strings.Contains(lower, "date") ||
			strings.Contains(lower, "total") {
			continue
		}
		items = append(items, LineItem{Text: joinItemText(row), Row: row})
		if len(items) == maxLineItems {
			break
		}
	}
	return items
}

// joinItemText joins a row's blocks with " | " so column boundaries survive
// in the report.
func joinItemText(row ocr.Row) string {
	parts := make([]string, 0, len(row))
	for _, b := range row {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, " | ")
}

// extractContact takes the first email and first phone match, independently.
func extractContact(fullText string) Contact {
	return Contact{
		Email: emailPattern.FindString(fullText),
		Phone: phonePattern.FindString(fullText),
	}
}
