package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"keiko-chat/internal/backend"
	"keiko-chat/internal/contextutil"
	"keiko-chat/internal/service"
)

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	chatService service.ChatService
	defaultTopK int
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, defaultTopK int) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		defaultTopK: defaultTopK,
	}
}

// Message is a role/content pair on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOverrides carries per-request configuration overrides. Fields the
// orchestrator does not consume (retrieval_mode, semantic_ranker,
// semantic_captions) are accepted and ignored for wire compatibility.
type ChatOverrides struct {
	RetrievalMode            *string  `json:"retrieval_mode,omitempty"`
	SemanticRanker           *bool    `json:"semantic_ranker,omitempty"`
	SemanticCaptions         *bool    `json:"semantic_captions,omitempty"`
	Top                      *int     `json:"top,omitempty"`
	Temperature              *float32 `json:"temperature,omitempty"`
	SuggestFollowupQuestions *bool    `json:"suggest_followup_questions,omitempty"`
	UseRAG                   *bool    `json:"use_rag,omitempty"`
	Stream                   *bool    `json:"stream,omitempty"`
}

// ChatContext wraps the overrides object.
type ChatContext struct {
	Overrides *ChatOverrides `json:"overrides,omitempty"`
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Messages     []Message       `json:"messages"`
	Context      *ChatContext    `json:"context,omitempty"`
	SessionState json.RawMessage `json:"session_state,omitempty"`
}

// DataPoints groups the source material behind a response.
type DataPoints struct {
	Text      []string `json:"text"`
	Images    []string `json:"images"`
	Citations []string `json:"citations"`
}

// ResponseContext carries data points, thoughts and follow-up questions.
type ResponseContext struct {
	DataPoints        DataPoints        `json:"data_points"`
	Thoughts          []service.Thought `json:"thoughts"`
	FollowupQuestions []string          `json:"followup_questions"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Message      Message         `json:"message"`
	Context      ResponseContext `json:"context"`
	SessionState json.RawMessage `json:"session_state,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for chat. Client input errors are
// rejected here, before orchestration begins.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcReq, errMsg := h.toServiceRequest(req)
	if errMsg != "" {
		logger.WarnContext(ctx, "invalid chat request", "reason", errMsg)
		h.writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	if streamRequested(req) {
		h.handleStreamingChat(w, ctx, svcReq)
		return
	}

	result, err := h.chatService.ProcessChat(ctx, svcReq)
	if err != nil {
		h.handleServiceError(w, ctx, err, "Failed to process chat request")
		return
	}

	resp := ChatResponse{
		Message: Message{Role: backend.RoleAssistant, Content: result.Content},
		Context: ResponseContext{
			DataPoints: DataPoints{
				Text:      []string{},
				Images:    []string{},
				Citations: result.Citations,
			},
			Thoughts:          result.Thoughts,
			FollowupQuestions: result.FollowupQuestions,
		},
		SessionState: req.SessionState,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleStreamingChat streams token deltas as Server-Sent Events. Each
// event carries one delta with no added envelope, in production order.
func (h *ChatHandler) handleStreamingChat(w http.ResponseWriter, ctx context.Context, svcReq service.ChatRequest) {
	logger := contextutil.LoggerFromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		h.writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	stream, err := h.chatService.StreamChat(ctx, svcReq)
	if err != nil {
		h.handleServiceError(w, ctx, err, "Failed to open chat stream")
		return
	}
	defer func() {
		_ = stream.Close()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Headers are sent; all we can do is log and terminate the stream.
			logger.ErrorContext(ctx, "error streaming chat", "error", err)
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", delta); err != nil {
			logger.WarnContext(ctx, "client went away during stream", "error", err)
			return
		}
		flusher.Flush()
	}

	_, _ = fmt.Fprintf(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// toServiceRequest validates the wire request and maps it into the domain
// request, applying defaults for absent overrides. Returns a non-empty
// message on validation failure.
func (h *ChatHandler) toServiceRequest(req ChatRequest) (service.ChatRequest, string) {
	if len(req.Messages) == 0 {
		return service.ChatRequest{}, "Messages must not be empty"
	}
	for _, m := range req.Messages {
		switch m.Role {
		case backend.RoleSystem, backend.RoleUser, backend.RoleAssistant:
		default:
			return service.ChatRequest{}, fmt.Sprintf("Invalid message role: %q", m.Role)
		}
	}

	svcReq := service.ChatRequest{
		Messages:        make([]backend.Message, 0, len(req.Messages)),
		TopK:            h.defaultTopK,
		SuggestFollowup: true,
	}
	for _, m := range req.Messages {
		svcReq.Messages = append(svcReq.Messages, backend.Message{Role: m.Role, Content: m.Content})
	}

	overrides := requestOverrides(req)
	if overrides == nil {
		return svcReq, ""
	}

	if overrides.Temperature != nil {
		if *overrides.Temperature < 0 || *overrides.Temperature > 2 {
			return service.ChatRequest{}, "Temperature must be between 0 and 2"
		}
		svcReq.Temperature = overrides.Temperature
	}
	if overrides.Top != nil {
		if *overrides.Top < 1 {
			return service.ChatRequest{}, "Top must be a positive integer"
		}
		svcReq.TopK = *overrides.Top
	}
	if overrides.SuggestFollowupQuestions != nil {
		svcReq.SuggestFollowup = *overrides.SuggestFollowupQuestions
	}
	if overrides.UseRAG != nil {
		svcReq.UseRAG = *overrides.UseRAG
	}
	return svcReq, ""
}

func requestOverrides(req ChatRequest) *ChatOverrides {
	if req.Context == nil {
		return nil
	}
	return req.Context.Overrides
}

func streamRequested(req ChatRequest) bool {
	overrides := requestOverrides(req)
	return overrides != nil && overrides.Stream != nil && *overrides.Stream
}

// handleServiceError maps service errors to HTTP status codes.
func (h *ChatHandler) handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		h.writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrStreamingUnavailable) {
		h.writeError(w, http.StatusNotImplemented, "Streaming is not available on the configured backend")
		return
	}

	if errors.Is(err, service.ErrExternalService) {
		h.writeError(w, http.StatusBadGateway, "External service error")
		return
	}

	h.writeError(w, http.StatusInternalServerError, defaultMsg)
}

// writeError writes an error response.
func (h *ChatHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
