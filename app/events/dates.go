package events

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// contextLength bounds the text quoted on each side of a date hit.
const contextLength = 100

var monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

// datePatterns cover the date spellings worth surfacing as event candidates.
// Numeric forms first, then month-name forms.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{2,4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b(?:` + monthNames + `)\s+\d{1,2},?\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:` + monthNames + `),?\s+\d{4}\b`),
}

// ExtractedDate is one date spotted in a page's text, with the surrounding
// prose so a caller can judge what the date refers to.
type ExtractedDate struct {
	Text    string    `json:"text"`
	Date    time.Time `json:"date"`
	Context string    `json:"context"`
}

// ExtractDates scans text for date-like strings and parses each one.
// Matches the parser cannot make sense of are dropped silently.
func ExtractDates(text string) []ExtractedDate {
	var dates []ExtractedDate
	for _, pattern := range datePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			parsed, err := dateparse.ParseAny(match)
			if err != nil {
				// the patterns match month names in any case, the parser
				// is stricter
				parsed, err = dateparse.ParseAny(strings.ToLower(match))
			}
			if err != nil {
				continue
			}
			dates = append(dates, ExtractedDate{
				Text:    match,
				Date:    parsed,
				Context: extractContext(text, match),
			})
		}
	}
	return dates
}

// extractContext quotes up to contextLength characters on each side of the
// first occurrence of dateStr, with ellipses where the quote is cut.
func extractContext(text, dateStr string) string {
	pos := strings.Index(text, dateStr)
	if pos == -1 {
		return ""
	}

	start := max(0, pos-contextLength)
	end := min(len(text), pos+len(dateStr)+contextLength)

	context := text[start:end]
	if start > 0 {
		context = "..." + context
	}
	if end < len(text) {
		context = context + "..."
	}
	return context
}
