package cache_test

import (
	"strings"
	"testing"

	"keiko-chat/internal/backend"
	"keiko-chat/internal/cache"
)

func TestResponseKey_Deterministic(t *testing.T) {
	messages := []backend.Message{
		{Role: backend.RoleUser, Content: "Hallo"},
		{Role: backend.RoleAssistant, Content: "Hi"},
	}
	params := map[string]any{"temperature": 0.7, "suggest_followup": true}

	first := cache.ResponseKey(messages, params)
	second := cache.ResponseKey(messages, params)
	if first != second {
		t.Errorf("same input produced different keys: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, "chat:response:") {
		t.Errorf("key = %q, want chat:response: prefix", first)
	}
}

func TestResponseKey_ParamOrderIndependent(t *testing.T) {
	messages := []backend.Message{{Role: backend.RoleUser, Content: "Hallo"}}

	a := map[string]any{}
	a["temperature"] = 0.7
	a["suggest_followup"] = true
	a["max_tokens"] = 200

	b := map[string]any{}
	b["max_tokens"] = 200
	b["suggest_followup"] = true
	b["temperature"] = 0.7

	if cache.ResponseKey(messages, a) != cache.ResponseKey(messages, b) {
		t.Error("param insertion order changed the key")
	}
}

func TestResponseKey_NilParamsDropped(t *testing.T) {
	messages := []backend.Message{{Role: backend.RoleUser, Content: "Hallo"}}

	with := cache.ResponseKey(messages, map[string]any{"temperature": 0.7, "session": nil})
	without := cache.ResponseKey(messages, map[string]any{"temperature": 0.7})
	if with != without {
		t.Error("nil-valued param changed the key")
	}
}

func TestResponseKey_SemanticDifferencesChangeKey(t *testing.T) {
	base := []backend.Message{{Role: backend.RoleUser, Content: "Hallo"}}
	baseParams := map[string]any{"temperature": 0.7}
	baseKey := cache.ResponseKey(base, baseParams)

	tests := []struct {
		name     string
		messages []backend.Message
		params   map[string]any
	}{
		{
			name:     "different content",
			messages: []backend.Message{{Role: backend.RoleUser, Content: "Tschuess"}},
			params:   baseParams,
		},
		{
			name:     "different role",
			messages: []backend.Message{{Role: backend.RoleAssistant, Content: "Hallo"}},
			params:   baseParams,
		},
		{
			name:     "different param value",
			messages: base,
			params:   map[string]any{"temperature": 0.2},
		},
		{
			name:     "extra param",
			messages: base,
			params:   map[string]any{"temperature": 0.7, "suggest_followup": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cache.ResponseKey(tt.messages, tt.params) == baseKey {
				t.Error("semantically different input produced the same key")
			}
		})
	}
}

func TestResponseKey_MessageOrderMatters(t *testing.T) {
	forward := []backend.Message{
		{Role: backend.RoleUser, Content: "eins"},
		{Role: backend.RoleUser, Content: "zwei"},
	}
	reversed := []backend.Message{
		{Role: backend.RoleUser, Content: "zwei"},
		{Role: backend.RoleUser, Content: "eins"},
	}

	if cache.ResponseKey(forward, nil) == cache.ResponseKey(reversed, nil) {
		t.Error("message order must be part of the key")
	}
}
