package search

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/secondbrain-labs/secondbrain/app/llm"
)

// llmRankLimit bounds how many results are sent to the model for scoring.
const llmRankLimit = 5

var scorePattern = regexp.MustCompile(`(?s)Result (\d+).*?(\d+(?:\.\d+)?)\s*/\s*10`)

// LLMRanker re-orders keyword search results by model-assessed relevance.
// Any failure leaves the keyword order untouched; the collaborator is
// strictly optional.
type LLMRanker struct {
	client llm.Client
	model  string
}

func NewLLMRanker(client llm.Client, model string) *LLMRanker {
	return &LLMRanker{client: client, model: model}
}

// Available reports whether a chat model is configured.
func (r *LLMRanker) Available() bool {
	return r.client != nil
}

// Run asks the model to score the top results 0-10 and sorts all results by
// the parsed scores, highest first.
func (r *LLMRanker) Run(ctx context.Context, query string, results []Result) []Result {
	if r.client == nil || len(results) == 0 {
		return results
	}

	limit := min(llmRankLimit, len(results))
	prompt := r.buildPrompt(query, results[:limit])

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 1000,
	})
	if err != nil {
		slog.Error("LLM ranking failed, keeping keyword order", "error", err)
		return results
	}
	if len(resp.Choices) == 0 {
		return results
	}

	scores := parseScores(resp.Choices[0].Message.Content)
	if len(scores) == 0 {
		return results
	}

	ranked := make([]Result, len(results))
	copy(ranked, results)
	for i := range ranked[:limit] {
		if score, ok := scores[i]; ok {
			ranked[i].RelevanceScore = score
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	return ranked
}

func (r *LLMRanker) buildPrompt(query string, results []Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a search engine assistant helping to rank search results for the query: %q\n\n", query)
	b.WriteString("Please analyze these search results and assess their relevance to the query on a scale of 0-10, where 10 is extremely relevant.\n")
	b.WriteString("For each result, provide a relevance score and brief explanation of why it's relevant or not relevant.\n\n")
	b.WriteString("Search Results:\n")

	for i, result := range results {
		fmt.Fprintf(&b, "\nResult %d:\nTitle: %s\nContent: %s\n", i+1, result.Title, result.ContentSnippet)
	}

	return b.String()
}

// parseScores extracts "Result N ... score/10" pairs from the model's free
// text, keyed by zero-based result index and normalized to 0-1.
func parseScores(text string) map[int]float64 {
	scores := make(map[int]float64)
	for _, match := range scorePattern.FindAllStringSubmatch(text, -1) {
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			continue
		}
		scores[index-1] = score / 10.0
	}
	return scores
}
