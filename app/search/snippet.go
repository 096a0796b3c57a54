package search

import (
	"regexp"
	"strings"
)

// SnippetLocator produces a bounded excerpt of a document centered on the
// first case-insensitive occurrence of the query, with ellipsis markers on
// truncated sides. The advanced variant additionally aligns the window to
// word boundaries and bolds the match.
type SnippetLocator struct{}

func NewSnippetLocator() *SnippetLocator {
	return &SnippetLocator{}
}

// boundaryBudget limits how far the advanced variant looks for a space when
// aligning the window to word boundaries.
const boundaryBudget = 20

// Run returns a plain snippet of at most maxLength characters.
func (l *SnippetLocator) Run(text, query string, maxLength int) string {
	if text == "" {
		return ""
	}

	pos := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if pos == -1 {
		return head(text, maxLength) + "..."
	}

	start, end := window(len(text), pos, maxLength)

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}

	return snippet
}

// RunAdvanced returns a word-boundary-aligned snippet with the matched query
// wrapped in markdown bold markers.
func (l *SnippetLocator) RunAdvanced(text, query string, maxLength int) string {
	if text == "" {
		return ""
	}

	pos := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if pos == -1 {
		return head(text, maxLength) + "..."
	}

	start, end := window(len(text), pos, maxLength)

	// Pull the edges to the nearest space so words are not cut mid-token.
	if start > 0 {
		if spacePos := strings.LastIndex(text[:min(len(text), start+boundaryBudget)], " "); spacePos >= 0 {
			start = spacePos + 1
		}
	}
	if end < len(text) {
		from := max(0, end-boundaryBudget)
		if spacePos := strings.Index(text[from:], " "); spacePos >= 0 {
			end = from + spacePos
		}
	}
	if end < start {
		end = start
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}

	pattern := regexp.MustCompile("(?i)(" + regexp.QuoteMeta(query) + ")")
	return pattern.ReplaceAllString(snippet, "**$1**")
}

// window centers a maxLength window on pos, shifting it back when it runs
// past the end of the text.
func window(textLen, pos, maxLength int) (int, int) {
	start := max(0, pos-maxLength/2)
	end := min(textLen, start+maxLength)
	if end == textLen {
		start = max(0, end-maxLength)
	}
	return start, end
}

func head(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}
