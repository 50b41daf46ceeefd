package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"keiko-chat/internal/backend"
	"keiko-chat/internal/retrieval"
)

// systemPrompt is the plain persona instruction for non-augmented chats.
const systemPrompt = `Du bist Keiko, ein hilfreicher KI-Assistent fuer Wissensmanagement.
Antworte praezise und hilfreich auf Deutsch. Wenn du dir nicht sicher bist, sage es ehrlich.`

// ragSystemPrompt replaces systemPrompt when retrieved context is present.
const ragSystemPrompt = `Du bist Keiko, ein hilfreicher KI-Assistent fuer Wissensmanagement.
Beantworte die Frage ausschliesslich mit Hilfe des bereitgestellten Kontexts.
Wenn der Kontext nicht genuegend Informationen enthaelt, sage es ehrlich.
Antworte praezise und hilfreich auf Deutsch.`

const followupPromptTemplate = `Basierend auf dieser Konversation, generiere 3 kurze Folgefragen.
Antwort: %s
Gib nur die Fragen zurueck, eine pro Zeile, ohne Nummerierung.`

// maxFollowupQuestions bounds the follow-up list.
const maxFollowupQuestions = 3

// tokenCounter measures prompt text against the context token budget.
type tokenCounter func(text string) int

// PromptBuilder assembles the message sequence sent to the backend. Retrieved
// documents become a context block held by a second system message; the
// original conversation always follows the system message(s) in order.
type PromptBuilder struct {
	tokenBudget int
	countTokens tokenCounter
}

// NewPromptBuilder creates a prompt builder whose RAG context block is
// truncated to tokenBudget tokens (0 disables truncation). Token counting
// uses the cl100k_base encoding, with a rough length estimate as fallback
// when the encoding data is unavailable.
func NewPromptBuilder(tokenBudget int) *PromptBuilder {
	counter := estimateTokens
	if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
		counter = func(text string) int {
			return len(enc.Encode(text, nil, nil))
		}
	} else {
		slog.Warn("tiktoken encoding unavailable, using length estimate", "error", err)
	}
	return &PromptBuilder{
		tokenBudget: tokenBudget,
		countTokens: counter,
	}
}

// Assemble prepends the appropriate system instruction(s) to the
// conversation. With documents present it uses the augmented instruction
// plus a system message carrying the context block; without documents it
// falls back silently to the plain instruction.
func (p *PromptBuilder) Assemble(docs []retrieval.Document, history []backend.Message) []backend.Message {
	messages := make([]backend.Message, 0, len(history)+2)
	if len(docs) > 0 {
		messages = append(messages,
			backend.Message{Role: backend.RoleSystem, Content: ragSystemPrompt},
			backend.Message{Role: backend.RoleSystem, Content: p.contextBlock(docs)},
		)
	} else {
		messages = append(messages, backend.Message{Role: backend.RoleSystem, Content: systemPrompt})
	}
	return append(messages, history...)
}

// contextBlock enumerates documents as "[i] source=<id>\n<content>" joined
// by blank lines, dropping whole documents from the end once the token
// budget is exceeded. The first document is always kept.
func (p *PromptBuilder) contextBlock(docs []retrieval.Document) string {
	blocks := make([]string, 0, len(docs))
	used := 0
	for i, doc := range docs {
		block := fmt.Sprintf("[%d] source=%s\n%s", i+1, doc.ID, doc.Content)
		cost := p.countTokens(block)
		if p.tokenBudget > 0 && used+cost > p.tokenBudget && len(blocks) > 0 {
			break
		}
		blocks = append(blocks, block)
		used += cost
	}
	return strings.Join(blocks, "\n\n")
}

// FollowupPrompt builds the instruction asking for exactly three short
// follow-up questions to the given answer.
func FollowupPrompt(answer string) string {
	return fmt.Sprintf(followupPromptTemplate, answer)
}

// ParseFollowupQuestions extracts at most three questions from the model
// output: one per line, trimmed, empties dropped.
func ParseFollowupQuestions(content string) []string {
	questions := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == maxFollowupQuestions {
			break
		}
	}
	return questions
}

// lastUserMessage returns the content of the most recent user-role message,
// scanning from the end; empty string if the conversation has none.
func lastUserMessage(messages []backend.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == backend.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// estimateTokens approximates the cl100k token count when the encoding
// data cannot be loaded. Four characters per token is close enough for a
// budget check.
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}
