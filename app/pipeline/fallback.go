package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// LocalExtractor fetches a page directly and runs readability over it. It is
// the fallback used when the pipeline could not be started, so a save still
// ends up with searchable text instead of only an error marker.
type LocalExtractor struct {
	httpClient *http.Client
	userAgent  string
}

func NewLocalExtractor(httpClient *http.Client, userAgent string) *LocalExtractor {
	return &LocalExtractor{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Run fetches the page at pageURL and returns its readable plain text.
func (e *LocalExtractor) Run(ctx context.Context, pageURL string) (string, error) {
	data, err := e.fetchPage(ctx, pageURL)
	if err != nil {
		return "", err
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(data), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no content extracted from page")
	}

	slog.Debug("Local content extraction succeeded", "url", pageURL, "content_length", len(text))

	return text, nil
}

func (e *LocalExtractor) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
