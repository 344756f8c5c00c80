package extract

import (
	"regexp"
	"strings"
)

// fieldPattern pairs a compiled pattern with the transform applied to its
// match. Cascades are ordered slices evaluated by firstMatch; slice order is
// the documented tie-break.
type fieldPattern struct {
	re      *regexp.Regexp
	capture func(match []string) string
}

// firstMatch evaluates the ordered cascade against text and returns the
// first pattern's transformed capture. Remaining patterns are not tried once
// one succeeds.
func firstMatch(text string, cascade []fieldPattern) (string, bool) {
	for _, p := range cascade {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return p.capture(m), true
		}
	}
	return "", false
}

func upperTrimmed(m []string) string {
	return strings.ToUpper(strings.TrimSpace(m[1]))
}

// PO number label variants, in priority order: "po no" before
// "purchase order no" before "p.o. no".
var poNumberCascade = []fieldPattern{
	{regexp.MustCompile(`(?i)po\s*no\.?\s*:?\s*([a-z0-9/-]+)`), upperTrimmed},
	{regexp.MustCompile(`(?i)purchase\s*order\s*no\.?\s*:?\s*([a-z0-9/-]+)`), upperTrimmed},
	{regexp.MustCompile(`(?i)p\.o\.?\s*no\.?\s*:?\s*([a-z0-9/-]+)`), upperTrimmed},
}

// Date pattern families: numeric D-M-Y forms first, then "D monthname Y".
var dateFamilies = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}`),
	regexp.MustCompile(`(?i)\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{2,4}`),
}

// Amount pattern families: label-prefixed amounts, then bare currency-marked
// numeric tokens.
var amountFamilies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:total|amount|sum)[\s:]*(?:rs\.?|₹|\$)?\s*[0-9,]+\.?\d*`),
	regexp.MustCompile(`(?i)(?:rs\.?|₹|\$)\s*[0-9,]+\.?\d*`),
}

// amountJunk strips everything but digits and separators from a raw amount
// match.
var amountJunk = regexp.MustCompile(`[^\d.,]`)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d{1,4}[\s-]?\(?\d{1,4}\)?[\s-]?\d{1,4}[\s-]?\d{1,9}`)
	digitPattern = regexp.MustCompile(`\d`)
)
