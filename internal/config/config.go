package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"keiko-chat/internal/backend"
)

// Backend selection values.
const (
	BackendLegacy  = "legacy"
	BackendFoundry = "foundry"
)

// Config holds all configuration for the application. It is constructed
// once at startup and passed by value into constructors; there is no
// global settings object.
type Config struct {
	// Backend selects the active model backend: "legacy" or "foundry".
	// Exactly one backend is active per process lifetime.
	Backend string

	// Azure OpenAI (legacy backend, also the streaming fallback).
	AzureOpenAIEndpoint   string
	AzureOpenAIAPIKey     string
	AzureOpenAIDeployment string
	AzureOpenAIAPIVersion string

	// Microsoft Foundry (multi-model backend).
	FoundryEndpoint        string
	FoundryAPIKey          string
	FoundryDefaultModel    string
	FoundryUseModelRouter  bool
	FoundryIQEnabled       bool
	FoundryKnowledgeBase   string
	FoundryRetrievalEffort backend.Effort

	// Search service (retrieval collaborator). Empty disables retrieval.
	SearchServiceURL string

	// Redis (response cache). Empty disables caching.
	RedisURL        string
	CacheTTLSeconds int

	// Chat defaults.
	DefaultTemperature    float32
	DefaultMaxTokens      int
	DefaultTopK           int
	RAGContextTokenBudget int

	// Server.
	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or an ancestor, it is
// loaded automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	loadDotenv()

	cfg := &Config{
		Backend:               strings.ToLower(getEnv("CHAT_BACKEND", BackendLegacy)),
		AzureOpenAIEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIAPIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureOpenAIDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o"),
		AzureOpenAIAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2024-08-01-preview"),
		FoundryEndpoint:       getEnv("FOUNDRY_ENDPOINT", ""),
		FoundryAPIKey:         getEnv("FOUNDRY_API_KEY", ""),
		FoundryDefaultModel:   getEnv("FOUNDRY_DEFAULT_MODEL", "gpt-4o"),
		FoundryKnowledgeBase:  getEnv("FOUNDRY_KNOWLEDGE_BASE", ""),
		SearchServiceURL:      getEnv("SEARCH_SERVICE_URL", "http://localhost:8002"),
		RedisURL:              getEnv("REDIS_URL", "redis://localhost:6379"),
		APIPort:               getEnv("API_PORT", "8001"),
		LogFormat:             strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	var err error
	if cfg.FoundryUseModelRouter, err = getBoolEnv("FOUNDRY_USE_MODEL_ROUTER", false); err != nil {
		return nil, err
	}
	if cfg.FoundryIQEnabled, err = getBoolEnv("FOUNDRY_IQ_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.CacheTTLSeconds, err = getIntEnv("CACHE_TTL_SECONDS", 3600); err != nil {
		return nil, err
	}
	if cfg.DefaultMaxTokens, err = getIntEnv("DEFAULT_MAX_TOKENS", 4096); err != nil {
		return nil, err
	}
	if cfg.DefaultTopK, err = getIntEnv("DEFAULT_TOP_K", 5); err != nil {
		return nil, err
	}
	if cfg.RAGContextTokenBudget, err = getIntEnv("RAG_CONTEXT_TOKEN_BUDGET", 3072); err != nil {
		return nil, err
	}

	temperature := getEnv("DEFAULT_TEMPERATURE", "0.7")
	parsedTemp, err := strconv.ParseFloat(temperature, 32)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_TEMPERATURE must be a valid float: %w", err)
	}
	cfg.DefaultTemperature = float32(parsedTemp)

	effort := backend.Effort(strings.ToLower(getEnv("FOUNDRY_RETRIEVAL_EFFORT", string(backend.EffortMedium))))
	switch effort {
	case backend.EffortLow, backend.EffortMedium, backend.EffortHigh:
		cfg.FoundryRetrievalEffort = effort
	default:
		return nil, fmt.Errorf("FOUNDRY_RETRIEVAL_EFFORT must be one of low, medium, high")
	}

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Validate backend selection and its required fields
	switch cfg.Backend {
	case BackendLegacy:
		if cfg.AzureOpenAIEndpoint == "" {
			return nil, fmt.Errorf("AZURE_OPENAI_ENDPOINT is required for the legacy backend")
		}
	case BackendFoundry:
		if cfg.FoundryEndpoint == "" {
			return nil, fmt.Errorf("FOUNDRY_ENDPOINT is required for the foundry backend")
		}
	default:
		return nil, fmt.Errorf("CHAT_BACKEND must be %q or %q", BackendLegacy, BackendFoundry)
	}

	if cfg.FoundryIQEnabled && cfg.FoundryKnowledgeBase == "" {
		return nil, fmt.Errorf("FOUNDRY_KNOWLEDGE_BASE is required when FOUNDRY_IQ_ENABLED is set")
	}

	return cfg, nil
}

// loadDotenv tries the current directory first, then walks up a few levels
// so the service can be started from a subdirectory during development.
func loadDotenv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return value, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a valid boolean: %w", key, err)
	}
	return value, nil
}
