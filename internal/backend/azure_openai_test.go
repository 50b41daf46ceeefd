package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"keiko-chat/internal/backend"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAzureOpenAI_SupportsStreaming(t *testing.T) {
	b := backend.NewAzureOpenAI("https://example.invalid", "key", "gpt-4o", "")
	if !b.SupportsStreaming() {
		t.Error("SupportsStreaming() = false, want true")
	}
}

func TestAzureOpenAI_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/openai/deployments/gpt-4o/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Api-Key") != "test-key" {
			t.Errorf("missing api-key header")
		}

		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			Temperature float32 `json:"temperature"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[1].Content != "Hallo" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Hi!"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	b := backend.NewAzureOpenAI(server.URL, "test-key", "gpt-4o", "2024-08-01-preview")

	content, err := b.Complete(context.Background(), []backend.Message{
		{Role: backend.RoleSystem, Content: "Du bist Keiko."},
		{Role: backend.RoleUser, Content: "Hallo"},
	}, backend.CompletionOptions{Temperature: 0.7, MaxTokens: 100})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if content != "Hi!" {
		t.Errorf("content = %q, want Hi!", content)
	}
}

func TestAzureOpenAI_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	b := backend.NewAzureOpenAI(server.URL, "key", "gpt-4o", "")

	_, err := b.Complete(context.Background(), []backend.Message{{Role: backend.RoleUser, Content: "Hallo"}}, backend.CompletionOptions{})
	if err == nil {
		t.Fatal("Complete() expected error, got nil")
	}
}

func TestAzureOpenAI_Complete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	b := backend.NewAzureOpenAI(server.URL, "key", "gpt-4o", "")

	if _, err := b.Complete(context.Background(), []backend.Message{{Role: backend.RoleUser, Content: "Hallo"}}, backend.CompletionOptions{}); err == nil {
		t.Fatal("Complete() expected error, got nil")
	}
}

func TestAzureOpenAI_StreamComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		chunks := []string{
			`{"choices":[{"delta":{"role":"assistant"}}]}`,
			`{"choices":[{"delta":{"content":"Hello"}}]}`,
			`{"choices":[{"delta":{"content":" world"}}]}`,
			`{"choices":[{"delta":{},"finish_reason":"stop"}]}`,
		}
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	b := backend.NewAzureOpenAI(server.URL, "key", "gpt-4o", "")

	stream, err := b.StreamComplete(context.Background(), []backend.Message{{Role: backend.RoleUser, Content: "Hallo"}}, backend.CompletionOptions{})
	if err != nil {
		t.Fatalf("StreamComplete() error = %v", err)
	}
	defer stream.Close()

	var got []string
	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Recv() error = %v", err)
		}
		got = append(got, delta)
	}

	if len(got) != 2 || got[0] != "Hello" || got[1] != " world" {
		t.Errorf("deltas = %v, want role prelude and finish marker skipped", got)
	}
}
