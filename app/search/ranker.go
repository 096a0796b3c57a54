package search

import (
	"sort"
	"strings"
)

// Document is one ranking candidate: a saved page's title plus its flattened
// body text.
type Document struct {
	ID    int64
	Title string
	URL   string
	Body  string
}

type ScoredDocument struct {
	Document
	Score int
}

// Ranker orders documents by weighted keyword occurrence as a pre-filter for
// optional LLM re-ranking. Purely in-memory and deterministic.
type Ranker struct {
	stopwords      map[string]bool
	titleWeight    int
	bodyWeight     int
	maxCandidates  int
	fallbackSample int
}

func NewRanker(config *Config) *Ranker {
	stopwords := make(map[string]bool, len(config.Stopwords))
	for _, word := range config.Stopwords {
		stopwords[word] = true
	}
	return &Ranker{
		stopwords:      stopwords,
		titleWeight:    config.TitleWeight,
		bodyWeight:     config.BodyWeight,
		maxCandidates:  config.MaxCandidates,
		fallbackSample: config.FallbackSample,
	}
}

// Run scores every document against the query and returns the top candidates
// in descending score order. When nothing scores above zero it falls back to
// an unranked sample so the caller always has some context to work with.
func (r *Ranker) Run(query string, docs []Document) []ScoredDocument {
	if len(docs) == 0 {
		return nil
	}

	tokens := r.tokenize(query)

	var matched []ScoredDocument
	for _, doc := range docs {
		titleLower := strings.ToLower(doc.Title)
		bodyLower := strings.ToLower(doc.Body)

		score := 0
		for _, token := range tokens {
			if strings.Contains(titleLower, token) {
				score += r.titleWeight
			}
			if strings.Contains(bodyLower, token) {
				score += r.bodyWeight
			}
		}

		if score > 0 {
			matched = append(matched, ScoredDocument{Document: doc, Score: score})
		}
	}

	if len(matched) == 0 {
		sample := min(r.fallbackSample, len(docs))
		fallback := make([]ScoredDocument, 0, sample)
		for _, doc := range docs[:sample] {
			fallback = append(fallback, ScoredDocument{Document: doc})
		}
		return fallback
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	if len(matched) > r.maxCandidates {
		matched = matched[:r.maxCandidates]
	}

	return matched
}

// tokenize splits the query on whitespace, lowercases, and drops stopwords.
// If filtering removes everything, the unfiltered tokens are used instead.
func (r *Ranker) tokenize(query string) []string {
	tokens := strings.Fields(strings.ToLower(query))

	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !r.stopwords[token] {
			filtered = append(filtered, token)
		}
	}

	if len(filtered) == 0 {
		return tokens
	}
	return filtered
}
