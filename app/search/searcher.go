package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/secondbrain-labs/secondbrain/app/database"
)

const (
	emptyCorpusMessage = "No saved pages found"
	noMatchesMessage   = "No results found"
)

// Searcher ties the search heuristics to the page store. It backs both the
// basic and the advanced search endpoints.
type Searcher struct {
	repo      database.PageRepository
	extractor *Extractor
	snippets  *SnippetLocator
	ranker    *Ranker
	llmRanker *LLMRanker
	config    *Config
}

func NewSearcher(repo database.PageRepository, extractor *Extractor, ranker *Ranker,
	llmRanker *LLMRanker, config *Config) *Searcher {
	return &Searcher{
		repo:      repo,
		extractor: extractor,
		snippets:  NewSnippetLocator(),
		ranker:    ranker,
		llmRanker: llmRanker,
		config:    config,
	}
}

// Basic performs a substring search over titles and raw payloads at the
// store level and attaches plain snippets.
func (s *Searcher) Basic(query string) (*Response, error) {
	pages, err := s.repo.SearchPages(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search pages: %w", err)
	}

	if len(pages) == 0 {
		message := noMatchesMessage
		if count, err := s.repo.GetPageCount(); err == nil && count == 0 {
			message = emptyCorpusMessage
		}
		return &Response{Message: message, Items: []Result{}}, nil
	}

	items := make([]Result, 0, len(pages))
	for _, page := range pages {
		result := Result{
			ID:      page.ID,
			Title:   page.Title,
			URL:     page.URL,
			SavedAt: page.SavedAt.Format(savedAtFormat),
		}
		if text := s.extractor.RunRaw(page.ExtractionPayload); text != "" {
			result.ContentSnippet = s.snippets.Run(text, query, s.config.SnippetLength)
		}
		items = append(items, result)
	}

	return &Response{
		Message: fmt.Sprintf("Found %d results", len(items)),
		Items:   items,
	}, nil
}

// Advanced flattens every stored payload, matches the query against titles
// and full text, attaches highlighted snippets, and optionally re-ranks the
// hits with the LLM collaborator.
func (s *Searcher) Advanced(ctx context.Context, query string, useLLM bool) (*Response, error) {
	pages, err := s.repo.GetAllPages()
	if err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}

	if len(pages) == 0 {
		return &Response{Message: emptyCorpusMessage, Items: []Result{}}, nil
	}

	queryLower := strings.ToLower(query)

	var items []Result
	for _, page := range pages {
		text := s.extractor.RunRaw(page.ExtractionPayload)

		if !strings.Contains(strings.ToLower(page.Title), queryLower) &&
			!strings.Contains(strings.ToLower(text), queryLower) {
			continue
		}

		items = append(items, Result{
			ID:             page.ID,
			Title:          page.Title,
			URL:            page.URL,
			SavedAt:        page.SavedAt.Format(savedAtFormat),
			ContentSnippet: s.snippets.RunAdvanced(text, query, s.config.AdvancedSnippetLength),
			RelevanceScore: 1.0,
		})
	}

	if len(items) == 0 {
		return &Response{Message: noMatchesMessage, Items: []Result{}}, nil
	}

	if useLLM && s.llmRanker.Available() {
		items = s.llmRanker.Run(ctx, query, items)
	}

	return &Response{
		Message: fmt.Sprintf("Found %d results", len(items)),
		Items:   items,
	}, nil
}
