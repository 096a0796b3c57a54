package search

// Result is one search hit as returned to API consumers.
type Result struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	SavedAt        string  `json:"saved_at"`
	ContentSnippet string  `json:"content_snippet,omitempty"`
	RelevanceScore float64 `json:"relevance_score,omitempty"`
}

// Response carries search hits plus a human-readable message. An empty
// corpus and zero matches produce different messages so callers can tell
// "no data" from "nothing matched".
type Response struct {
	Message string   `json:"message"`
	Items   []Result `json:"items"`
}

// savedAtFormat matches the timestamp format the original extension UI
// expects.
const savedAtFormat = "2006-01-02 15:04:05"
