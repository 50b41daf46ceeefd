package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"

	"keiko-chat/internal/backend"
	"keiko-chat/internal/cache"
	"keiko-chat/internal/config"
	"keiko-chat/internal/http"
	"keiko-chat/internal/observability"
	"keiko-chat/internal/retrieval"
	"keiko-chat/internal/service"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := context.Background()

	// Response cache. A missing or unreachable Redis never prevents startup;
	// the service runs with caching disabled.
	var responseCache *cache.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(redisOpts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			slog.Warn("Redis unreachable, running without response cache", "error", err)
			_ = rdb.Close()
		} else {
			responseCache = cache.New(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
			defer func() {
				_ = rdb.Close()
			}()
			slog.Info("Response cache enabled", "ttl_seconds", cfg.CacheTTLSeconds)
		}
	}

	// Model backends. Exactly one is active; the legacy backend doubles as
	// the streaming fallback when the foundry backend is active.
	var active backend.Backend
	var streamFallback backend.Backend
	var grounded service.GroundedSearcher

	var azure *backend.AzureOpenAI
	if cfg.AzureOpenAIEndpoint != "" {
		azure = backend.NewAzureOpenAI(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIAPIKey, cfg.AzureOpenAIDeployment, cfg.AzureOpenAIAPIVersion)
	}

	switch cfg.Backend {
	case config.BackendLegacy:
		active = azure
		slog.Info("Using legacy backend", "deployment", cfg.AzureOpenAIDeployment)
	case config.BackendFoundry:
		foundry := backend.NewFoundry(cfg.FoundryEndpoint, cfg.FoundryAPIKey, cfg.FoundryDefaultModel, cfg.FoundryUseModelRouter)
		active = foundry
		if azure != nil {
			streamFallback = azure
		}
		if cfg.FoundryIQEnabled {
			grounded = foundry
		}
		slog.Info("Using foundry backend",
			"model", cfg.FoundryDefaultModel,
			"model_router", cfg.FoundryUseModelRouter,
			"grounded_search", cfg.FoundryIQEnabled,
		)
	}

	deps := service.Dependencies{
		Backend:        active,
		StreamFallback: streamFallback,
		Grounded:       grounded,
	}
	if responseCache != nil {
		deps.Cache = responseCache
	}
	if cfg.SearchServiceURL != "" {
		deps.Retriever = retrieval.NewClient(cfg.SearchServiceURL)
		slog.Info("Retrieval enabled", "url", cfg.SearchServiceURL)
	}

	registry := prometheus.NewRegistry()
	deps.Metrics = observability.New(registry)

	chatService := service.NewChatService(deps, service.Options{
		BackendName:        cfg.Backend,
		DefaultTemperature: cfg.DefaultTemperature,
		MaxTokens:          cfg.DefaultMaxTokens,
		DefaultTopK:        cfg.DefaultTopK,
		CacheTTL:           time.Duration(cfg.CacheTTLSeconds) * time.Second,
		ContextTokenBudget: cfg.RAGContextTokenBudget,
		KnowledgeBase:      cfg.FoundryKnowledgeBase,
		RetrievalEffort:    cfg.FoundryRetrievalEffort,
	})

	routerDeps := &http.Deps{
		ChatService: chatService,
		Registry:    registry,
		DefaultTopK: cfg.DefaultTopK,
	}
	if responseCache != nil {
		routerDeps.CachePinger = responseCache
	}
	router := http.NewRouter(routerDeps)

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Starting API server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("Shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(timeoutCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
