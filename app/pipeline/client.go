package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var _ API = (*Client)(nil)

// Client talks to the external extraction pipeline ("Gumloop") over HTTP.
// It is stateless; every save request drives one run through it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userID     string
	pipelineID string
	userAgent  string
}

func NewClient(httpClient *http.Client, baseURL, apiKey, userID, pipelineID, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		userID:     userID,
		pipelineID: pipelineID,
		userAgent:  userAgent,
	}
}

type startRequest struct {
	UserID         string          `json:"user_id"`
	SavedItemID    string          `json:"saved_item_id"`
	PipelineInputs []pipelineInput `json:"pipeline_inputs"`
}

type pipelineInput struct {
	InputName string `json:"input_name"`
	Value     string `json:"value"`
}

// StartRun submits a new extraction job for the given page URL and returns
// the run id reported by the pipeline. ErrNoRunID is returned when the
// pipeline accepted the job without identifying it.
func (c *Client) StartRun(ctx context.Context, pageURL string) (string, error) {
	body, err := json.Marshal(startRequest{
		UserID:      c.userID,
		SavedItemID: c.pipelineID,
		PipelineInputs: []pipelineInput{
			{InputName: "url", Value: pageURL},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode start request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/start_pipeline", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create start request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to start pipeline run: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pipeline start HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var started struct {
		RunID string `json:"run_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		return "", fmt.Errorf("failed to decode start response: %w", err)
	}

	if started.RunID == "" {
		return "", ErrNoRunID
	}

	return started.RunID, nil
}

// GetRun fetches the current status of a run. It returns the raw response
// body alongside the reported state so callers can store the payload without
// committing to any particular schema.
func (c *Client) GetRun(ctx context.Context, runID string) (json.RawMessage, string, error) {
	query := url.Values{}
	query.Set("run_id", runID)
	query.Set("user_id", c.userID)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/get_pl_run?"+query.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create status request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch run status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("pipeline status HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read status response: %w", err)
	}

	var status struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, "", fmt.Errorf("failed to decode status response: %w", err)
	}

	return body, status.State, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("User-Agent", c.userAgent)
}
