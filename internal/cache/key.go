package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"keiko-chat/internal/backend"
)

// keyNamespace prefixes every chat response key.
const keyNamespace = "chat:response:"

// keyPayload is the canonical serialization hashed into a cache key.
// Messages keep their original order (two histories differing only in
// message order are different conversations). Params is a map so that
// encoding/json emits its keys sorted; caller-side insertion order can
// never affect the key.
type keyPayload struct {
	Messages []backend.Message `json:"messages"`
	Params   map[string]any    `json:"params"`
}

// ResponseKey derives the deterministic cache key for a chat request from
// its semantic content: the message history plus the named parameters that
// influence the response. Nil-valued params are dropped. Transient fields
// (useRag, stream, topK) must not be passed in: only the non-RAG,
// non-streaming path is cached.
func ResponseKey(messages []backend.Message, params map[string]any) string {
	canonical := keyPayload{
		Messages: messages,
		Params:   make(map[string]any, len(params)),
	}
	for name, value := range params {
		if value == nil {
			continue
		}
		canonical.Params[name] = value
	}

	// Marshal of this payload cannot fail: it is strings, bools and numbers.
	data, _ := json.Marshal(canonical)
	digest := sha256.Sum256(data)
	return keyNamespace + hex.EncodeToString(digest[:])
}
