package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/secondbrain-labs/secondbrain/app/database"
	"github.com/secondbrain-labs/secondbrain/app/llm"
)

const (
	chatUnavailableMessage = "Conversational search is not available because no chat model is configured."
	chatNoPagesMessage     = "I don't have any saved pages to search through."

	// bounds on the context assembled for the model
	chatContentLimit = 5000
	chatSnippetLimit = 1000
)

// Chat answers free-form questions about the saved corpus. It prefilters
// pages with the keyword ranker, hands the top candidates to the model as
// context, and degrades to fixed messages when no model is configured.
type Chat struct {
	client    llm.Client
	model     string
	extractor *Extractor
	ranker    *Ranker
}

func NewChat(client llm.Client, model string, extractor *Extractor, ranker *Ranker) *Chat {
	return &Chat{
		client:    client,
		model:     model,
		extractor: extractor,
		ranker:    ranker,
	}
}

// Run produces a conversational answer. It never returns an error to the
// transport layer; failures become apologetic answers.
func (c *Chat) Run(ctx context.Context, query string, pages []database.SavedPage) string {
	if c.client == nil {
		return chatUnavailableMessage
	}
	if len(pages) == 0 {
		return chatNoPagesMessage
	}

	docs := make([]Document, 0, len(pages))
	for _, page := range pages {
		body := c.extractor.RunRaw(page.ExtractionPayload)
		if len(body) > chatContentLimit {
			body = body[:chatContentLimit]
		}
		docs = append(docs, Document{
			ID:    page.ID,
			Title: page.Title,
			URL:   page.URL,
			Body:  body,
		})
	}

	candidates := c.ranker.Run(query, docs)

	savedAt := make(map[int64]string, len(pages))
	for _, page := range pages {
		savedAt[page.ID] = page.SavedAt.Format(savedAtFormat)
	}

	var contexts []string
	for i, candidate := range candidates {
		snippet := candidate.Body
		if snippet == "" {
			snippet = "No content available"
		} else if len(snippet) > chatSnippetLimit {
			snippet = snippet[:chatSnippetLimit]
		}
		contexts = append(contexts, fmt.Sprintf(
			"Page %d:\nTitle: %s\nURL: %s\nSaved: %s\nContent Snippet: %s\n",
			i+1, candidate.Title, candidate.URL, savedAt[candidate.ID], snippet))
	}

	system := fmt.Sprintf(`You are SecondBrain, an AI assistant with access to the user's saved web pages and bookmarks.
Your goal is to help the user remember and find information from their saved content.
The user's query is: %q

Below is a selection of web pages the user has saved. Use this information to answer their query.
If the query seems to be asking about a specific saved page, mention details about that page (title, when it was saved, and relevant content).
If you find relevant information, provide a helpful summary from the content with the specific URL as a citation.
If you don't find any relevant information, politely say you couldn't find anything related in their saved pages.

SAVED PAGES:
%s`, query, strings.Join(contexts, "\n\n"))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: "Answer based on my saved web pages."},
		},
		MaxTokens: 2000,
	})
	if err != nil {
		slog.Error("Conversational search failed", "error", err)
		return fmt.Sprintf("I encountered an error while searching through your saved pages: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "I couldn't produce an answer from your saved pages."
	}

	return resp.Choices[0].Message.Content
}
