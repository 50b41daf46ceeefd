package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// AzureOpenAI is the legacy single-model backend, talking to an Azure
// OpenAI chat completions deployment. It supports both full completions
// and token-level streaming.
type AzureOpenAI struct {
	client     *openai.Client
	deployment string
	logger     *slog.Logger
}

// NewAzureOpenAI creates the legacy backend for the given deployment.
func NewAzureOpenAI(endpoint, apiKey, deployment, apiVersion string) *AzureOpenAI {
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	if apiVersion != "" {
		cfg.APIVersion = apiVersion
	}
	return &AzureOpenAI{
		client:     openai.NewClientWithConfig(cfg),
		deployment: deployment,
		logger:     slog.Default(),
	}
}

// SupportsStreaming reports true; the legacy backend always streams.
func (b *AzureOpenAI) SupportsStreaming() bool { return true }

// Complete sends a chat completion request and returns the reply text.
func (b *AzureOpenAI) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, b.buildRequest(messages, opts, false))
	if err != nil {
		return "", fmt.Errorf("azure openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("azure openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// StreamComplete opens a streaming chat completion and returns a pull-driven
// token stream over its deltas.
func (b *AzureOpenAI) StreamComplete(ctx context.Context, messages []Message, opts CompletionOptions) (TokenStream, error) {
	stream, err := b.client.CreateChatCompletionStream(ctx, b.buildRequest(messages, opts, true))
	if err != nil {
		return nil, fmt.Errorf("azure openai stream failed: %w", err)
	}
	return &azureStream{inner: stream}, nil
}

func (b *AzureOpenAI) buildRequest(messages []Message, opts CompletionOptions, stream bool) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:       b.deployment,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Stream:      stream,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return req
}

// azureStream adapts the go-openai stream to TokenStream.
type azureStream struct {
	inner *openai.ChatCompletionStream
}

// Recv returns the next non-empty text delta, or io.EOF when the stream is
// exhausted. Chunks without content (role preludes, finish markers) are
// skipped.
func (s *azureStream) Recv() (string, error) {
	for {
		resp, err := s.inner.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("azure openai stream recv failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
		if resp.Choices[0].FinishReason != "" {
			return "", io.EOF
		}
	}
}

func (s *azureStream) Close() error {
	return s.inner.Close()
}
