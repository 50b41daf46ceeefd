package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ModelRouter is the pseudo-model that lets Foundry pick the underlying
// model per request based on query complexity.
const ModelRouter = "model-router"

// Foundry is the multi-model backend. It completes against any model
// hosted by a Microsoft Foundry project, optionally delegating model
// selection to the model router, and exposes grounded (agentic RAG)
// search over a knowledge base.
//
// Foundry has no token-level streaming; StreamComplete always returns
// ErrStreamingUnsupported and callers must fall back to the legacy
// backend or fail with a capability error.
type Foundry struct {
	BaseURL        string
	APIKey         string
	DefaultModel   string
	UseModelRouter bool

	client *http.Client
	logger *slog.Logger
}

// NewFoundry creates the multi-model backend.
func NewFoundry(baseURL, apiKey, defaultModel string, useModelRouter bool) *Foundry {
	return &Foundry{
		BaseURL:        baseURL,
		APIKey:         apiKey,
		DefaultModel:   defaultModel,
		UseModelRouter: useModelRouter,
		client:         http.DefaultClient,
		logger:         slog.Default(),
	}
}

// SupportsStreaming reports false; Foundry cannot stream.
func (b *Foundry) SupportsStreaming() bool { return false }

// StreamComplete is unavailable on this backend.
func (b *Foundry) StreamComplete(ctx context.Context, messages []Message, opts CompletionOptions) (TokenStream, error) {
	return nil, ErrStreamingUnsupported
}

type foundryCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type foundryCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends a chat completion request to the Foundry models endpoint.
// The target model is opts.Model, falling back to the configured default;
// when the model router is enabled it wins over both.
func (b *Foundry) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = b.DefaultModel
	}
	if b.UseModelRouter {
		model = ModelRouter
	}
	b.logger.DebugContext(ctx, "foundry completion", "model", model)

	payload := foundryCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	var resp foundryCompletionResponse
	if err := b.post(ctx, "/models/chat/completions", payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("foundry returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type groundedSearchRequest struct {
	Query           string `json:"query"`
	KnowledgeBase   string `json:"knowledge_base"`
	RetrievalEffort Effort `json:"retrieval_effort"`
}

// GroundedSearch runs an agentic RAG query against a Foundry knowledge
// base and returns the synthesized answer with citations.
func (b *Foundry) GroundedSearch(ctx context.Context, query, knowledgeBase string, effort Effort) (GroundedAnswer, error) {
	if effort == "" {
		effort = EffortMedium
	}
	b.logger.DebugContext(ctx, "foundry grounded search", "knowledge_base", knowledgeBase, "effort", effort)

	payload := groundedSearchRequest{
		Query:           query,
		KnowledgeBase:   knowledgeBase,
		RetrievalEffort: effort,
	}

	var answer GroundedAnswer
	if err := b.post(ctx, "/knowledge/search", payload, &answer); err != nil {
		return GroundedAnswer{}, err
	}
	return answer, nil
}

func (b *Foundry) post(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", b.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("foundry bad status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
