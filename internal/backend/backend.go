package backend

import (
	"context"
	"errors"
)

// Message roles understood by all backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrStreamingUnsupported is returned by StreamComplete on backends that
// cannot produce token-level streams.
var ErrStreamingUnsupported = errors.New("backend does not support streaming")

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions holds parameters for a completion request.
type CompletionOptions struct {
	// Model overrides the backend's default model. Ignored by single-model
	// backends.
	Model string

	// Temperature controls the randomness of the output.
	Temperature float32

	// MaxTokens caps the number of tokens to generate. 0 means no cap.
	MaxTokens int
}

// TokenStream is a pull-driven sequence of text deltas produced by a
// streaming completion. Recv returns io.EOF when the stream is exhausted.
// Streams are finite and not restartable; callers must Close the stream
// when they stop consuming it so the underlying connection is released.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// Backend is the capability shared by all model backends.
// The orchestrator depends only on this interface, never on a concrete
// backend type.
type Backend interface {
	// Complete produces a full completion for the given messages.
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)

	// StreamComplete produces a lazy stream of text deltas. Backends for
	// which SupportsStreaming reports false return ErrStreamingUnsupported.
	StreamComplete(ctx context.Context, messages []Message, opts CompletionOptions) (TokenStream, error)

	// SupportsStreaming reports whether StreamComplete is available.
	SupportsStreaming() bool
}

// Effort selects how much agentic reasoning a grounded search performs.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// GroundedCitation points at a source document backing a grounded answer.
type GroundedCitation struct {
	DocumentID string `json:"document_id"`
	Quote      string `json:"quote"`
}

// GroundedAnswer is the result of a grounded (agentic RAG) search: a
// synthesized answer with its supporting citations.
type GroundedAnswer struct {
	Answer    string             `json:"answer"`
	Citations []GroundedCitation `json:"citations"`
}
