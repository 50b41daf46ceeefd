package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService keiko-chat/internal/service ChatService
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collaborators.go -package=mocks keiko-chat/internal/service Retriever,GroundedSearcher,ResponseCache
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_backend.go -package=mocks keiko-chat/internal/backend Backend,TokenStream

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"keiko-chat/internal/backend"
	"keiko-chat/internal/cache"
	"keiko-chat/internal/contextutil"
	"keiko-chat/internal/observability"
	"keiko-chat/internal/retrieval"
)

// ChatRequest represents a chat request in the domain layer. Messages is
// the full conversation history in order; Temperature nil means "use the
// configured default".
type ChatRequest struct {
	Messages        []backend.Message
	Temperature     *float32
	UseRAG          bool
	TopK            int
	SuggestFollowup bool
}

// Thought is an observability breadcrumb describing one orchestration step.
type Thought struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ChatResult is the assembled response for one chat request. Instances are
// serialized as-is into the response cache.
type ChatResult struct {
	Content           string    `json:"content"`
	Thoughts          []Thought `json:"thoughts"`
	Citations         []string  `json:"citations"`
	FollowupQuestions []string  `json:"followup_questions"`
}

// ChatService provides chat orchestration.
type ChatService interface {
	// ProcessChat runs the full non-streaming pipeline and returns the
	// assembled result.
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResult, error)
	// StreamChat runs the streaming pipeline and returns a pull-driven
	// token stream. The caller owns the stream and must Close it.
	StreamChat(ctx context.Context, req ChatRequest) (backend.TokenStream, error)
}

// Retriever is the document-search collaborator, from the orchestrator's
// perspective (consumer-first). Errors are surfaced so the orchestrator's
// continue-without-augmentation branch is an explicit decision.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]retrieval.Document, error)
}

// GroundedSearcher is the agentic RAG capability of the multi-model
// backend: retrieval and synthesis in one call.
type GroundedSearcher interface {
	GroundedSearch(ctx context.Context, query, knowledgeBase string, effort backend.Effort) (backend.GroundedAnswer, error)
}

// ResponseCache is the TTL key-value store holding serialized ChatResults.
// All methods fail open; a false return is a miss or a swallowed failure.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
}

// Dependencies holds the orchestrator's collaborators. Backend is
// required; everything else is optional and its absence disables the
// corresponding branch.
type Dependencies struct {
	// Backend is the active model backend, fixed for the process lifetime.
	Backend backend.Backend
	// StreamFallback handles streaming when Backend cannot. Typically the
	// legacy backend configured alongside the multi-model one.
	StreamFallback backend.Backend
	// Grounded enables the agentic RAG path when non-nil.
	Grounded GroundedSearcher
	// Retriever enables generic retrieval augmentation when non-nil.
	Retriever Retriever
	// Cache enables response caching on the non-RAG path when non-nil.
	Cache ResponseCache
	// Metrics records orchestration counters; optional.
	Metrics *observability.Metrics
}

// Options holds the orchestrator's tunables, resolved once at startup.
type Options struct {
	BackendName        string
	DefaultTemperature float32
	MaxTokens          int
	DefaultTopK        int
	CacheTTL           time.Duration
	ContextTokenBudget int
	KnowledgeBase      string
	RetrievalEffort    backend.Effort
}

// chatService implements ChatService.
type chatService struct {
	backend        backend.Backend
	streamFallback backend.Backend
	grounded       GroundedSearcher
	retriever      Retriever
	cache          ResponseCache
	metrics        *observability.Metrics
	prompts        *PromptBuilder
	opts           Options
}

// NewChatService creates the chat orchestrator.
func NewChatService(deps Dependencies, opts Options) ChatService {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = observability.New(prometheus.NewRegistry())
	}
	if opts.BackendName == "" {
		opts.BackendName = "unknown"
	}
	return &chatService{
		backend:        deps.Backend,
		streamFallback: deps.StreamFallback,
		grounded:       deps.Grounded,
		retriever:      deps.Retriever,
		cache:          deps.Cache,
		metrics:        metrics,
		prompts:        NewPromptBuilder(opts.ContextTokenBudget),
		opts:           opts,
	}
}

// ProcessChat runs the non-streaming pipeline: cache check (non-RAG only),
// optional augmentation, completion, optional follow-up questions, cache
// write (non-RAG only).
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(req.Messages) == 0 {
		logger.WarnContext(ctx, "empty message list in chat request")
		return ChatResult{}, &ValidationError{Field: "messages", Message: "cannot be empty"}
	}

	mode := "chat"
	if req.UseRAG {
		mode = "chat_rag"
	}

	// Results produced via the RAG path are never read from or written to
	// the cache; the key intentionally excludes useRag, stream and topK.
	cacheKey := ""
	if !req.UseRAG && s.cache != nil {
		cacheKey = s.cacheKey(req)
		var cached ChatResult
		if s.cache.Get(ctx, cacheKey, &cached) {
			s.metrics.CacheHits.Inc()
			s.metrics.RequestsTotal.WithLabelValues(mode, "success").Inc()
			logger.InfoContext(ctx, "chat served from cache", "key", cacheKey)
			return cached, nil
		}
		s.metrics.CacheMisses.Inc()
	}

	result := ChatResult{
		Thoughts:          []Thought{},
		Citations:         []string{},
		FollowupQuestions: []string{},
	}

	if req.UseRAG && s.grounded != nil {
		answer, err := s.grounded.GroundedSearch(ctx, lastUserMessage(req.Messages), s.opts.KnowledgeBase, s.opts.RetrievalEffort)
		if err != nil {
			s.metrics.RequestsTotal.WithLabelValues(mode, "error").Inc()
			logger.ErrorContext(ctx, "grounded search failed", "error", err)
			return ChatResult{}, WrapError(err, "grounded search failed")
		}
		result.Content = answer.Answer
		for _, citation := range answer.Citations {
			result.Citations = append(result.Citations, citation.DocumentID)
		}
		result.Thoughts = append(result.Thoughts, Thought{
			Title:       "Grounded search",
			Description: fmt.Sprintf("%d citations from knowledge base %q", len(answer.Citations), s.opts.KnowledgeBase),
		})
	} else {
		docs := s.retrieveDocuments(ctx, req)
		if req.UseRAG {
			result.Thoughts = append(result.Thoughts, Thought{
				Title:       "Retrieval",
				Description: fmt.Sprintf("%d documents retrieved", len(docs)),
			})
		}

		content, err := s.complete(ctx, s.prompts.Assemble(docs, req.Messages), backend.CompletionOptions{
			Temperature: s.temperature(req),
			MaxTokens:   s.opts.MaxTokens,
		})
		if err != nil {
			s.metrics.RequestsTotal.WithLabelValues(mode, "error").Inc()
			logger.ErrorContext(ctx, "completion failed", "error", err)
			return ChatResult{}, WrapError(err, "completion failed")
		}
		result.Content = content
		for _, doc := range docs {
			result.Citations = append(result.Citations, doc.ID)
		}
	}

	if req.SuggestFollowup {
		result.FollowupQuestions = s.followupQuestions(ctx, result.Content)
	}

	if cacheKey != "" {
		s.cache.Set(ctx, cacheKey, result, s.opts.CacheTTL)
	}

	s.metrics.RequestsTotal.WithLabelValues(mode, "success").Inc()
	logger.InfoContext(ctx, "chat request processed",
		"mode", mode,
		"citations", len(result.Citations),
		"followup_questions", len(result.FollowupQuestions),
	)
	return result, nil
}

// StreamChat runs the streaming pipeline. Streaming results are never
// cached. When the active backend cannot stream, the legacy fallback takes
// over; with no fallback configured the request fails with
// ErrStreamingUnavailable.
func (s *chatService) StreamChat(ctx context.Context, req ChatRequest) (backend.TokenStream, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(req.Messages) == 0 {
		logger.WarnContext(ctx, "empty message list in streaming chat request")
		return nil, &ValidationError{Field: "messages", Message: "cannot be empty"}
	}

	streamBackend := s.backend
	if !streamBackend.SupportsStreaming() {
		if s.streamFallback == nil {
			s.metrics.RequestsTotal.WithLabelValues("stream", "error").Inc()
			return nil, ErrStreamingUnavailable
		}
		logger.WarnContext(ctx, "active backend cannot stream, using legacy fallback")
		streamBackend = s.streamFallback
	}

	docs := s.retrieveDocuments(ctx, req)

	stream, err := streamBackend.StreamComplete(ctx, s.prompts.Assemble(docs, req.Messages), backend.CompletionOptions{
		Temperature: s.temperature(req),
		MaxTokens:   s.opts.MaxTokens,
	})
	if err != nil {
		s.metrics.RequestsTotal.WithLabelValues("stream", "error").Inc()
		logger.ErrorContext(ctx, "failed to open completion stream", "error", err)
		return nil, WrapError(err, "failed to open completion stream")
	}

	s.metrics.RequestsTotal.WithLabelValues("stream", "success").Inc()
	return stream, nil
}

// retrieveDocuments runs best-effort retrieval for RAG requests. Any error
// is the explicit fail-open branch: log, count, continue un-augmented.
func (s *chatService) retrieveDocuments(ctx context.Context, req ChatRequest) []retrieval.Document {
	if !req.UseRAG || s.retriever == nil {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	topK := req.TopK
	if topK <= 0 {
		topK = s.opts.DefaultTopK
	}

	docs, err := s.retriever.Search(ctx, lastUserMessage(req.Messages), topK)
	if err != nil {
		s.metrics.RetrievalFailures.Inc()
		logger.WarnContext(ctx, "retrieval failed, continuing without augmentation", "error", err)
		return nil
	}
	return docs
}

// followupQuestions asks the backend for three short follow-up questions.
// Failure never fails the primary response; it degrades to an empty list.
func (s *chatService) followupQuestions(ctx context.Context, answer string) []string {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := []backend.Message{{Role: backend.RoleUser, Content: FollowupPrompt(answer)}}
	content, err := s.backend.Complete(ctx, prompt, backend.CompletionOptions{
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		s.metrics.FollowupFailures.Inc()
		logger.WarnContext(ctx, "follow-up generation failed", "error", err)
		return []string{}
	}
	return ParseFollowupQuestions(content)
}

// complete invokes the active backend, timing the call.
func (s *chatService) complete(ctx context.Context, messages []backend.Message, opts backend.CompletionOptions) (string, error) {
	timer := prometheus.NewTimer(s.metrics.CompletionSeconds.WithLabelValues(s.opts.BackendName))
	defer timer.ObserveDuration()
	return s.backend.Complete(ctx, messages, opts)
}

func (s *chatService) temperature(req ChatRequest) float32 {
	if req.Temperature != nil {
		return *req.Temperature
	}
	return s.opts.DefaultTemperature
}

// cacheKey derives the response cache key from the request's semantic
// content: messages plus the parameters that shape the cached result.
func (s *chatService) cacheKey(req ChatRequest) string {
	params := map[string]any{
		"suggest_followup": req.SuggestFollowup,
	}
	if req.Temperature != nil {
		params["temperature"] = *req.Temperature
	}
	return cache.ResponseKey(req.Messages, params)
}
