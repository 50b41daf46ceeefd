package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// searchTimeout bounds a single search-service call. Retrieval is
// best-effort; the orchestrator continues without augmentation when a
// call errors or times out.
const searchTimeout = 10 * time.Second

// Document is a retrieved document. Ephemeral; never persisted here.
type Document struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Client calls the external search service.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a search-service client with a bounded timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: searchTimeout},
	}
}

type searchRequest struct {
	Query             string `json:"query"`
	TopK              int    `json:"top_k"`
	UseSemanticRanker bool   `json:"use_semantic_ranker"`
}

type searchResponse struct {
	Results    []Document `json:"results"`
	TotalCount int        `json:"total_count"`
}

// Search returns the top documents for a query. Any failure is returned to
// the caller as an error; deciding to continue without augmentation is the
// caller's branch, not an incidental consequence of swallowing here.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]Document, error) {
	payload := searchRequest{
		Query:             query,
		TopK:              topK,
		UseSemanticRanker: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search bad status %d: %s", resp.StatusCode, string(raw))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return searchResp.Results, nil
}
