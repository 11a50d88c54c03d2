package agent

import (
	"fmt"
	"strings"

	"maxagent/rag"
	"maxagent/web/types"
)

// historyWindow is the trailing slice of prior turns carried into each call.
const historyWindow = 10

// buildMessages assembles the ordered message sequence for the generation
// backend. The order is fixed: system instruction with the document context,
// then up to ten prior turns, then (when the last assistant turn used emojis)
// one anti-repetition instruction, then the current user turn. Worst case is
// 13 messages.
func buildMessages(systemPrompt, documentContext string, history []types.AgentMessage, userMessage string) []types.AgentMessage {
	windowed := trailingWindow(history, historyWindow)

	messages := make([]types.AgentMessage, 0, len(windowed)+3)
	messages = append(messages, types.AgentMessage{
		Role: "system",
		Content: fmt.Sprintf("%s\n\nCONTEXTO DOS DOCUMENTOS INTERNOS:\n%s",
			strings.TrimSpace(systemPrompt), documentContext),
	})
	messages = append(messages, windowed...)

	if directive := antiRepetitionDirective(windowed); directive != "" {
		messages = append(messages, types.AgentMessage{Role: "system", Content: directive})
	}

	messages = append(messages, types.AgentMessage{Role: "user", Content: userMessage})
	return messages
}

func trailingWindow(history []types.AgentMessage, n int) []types.AgentMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// antiRepetitionDirective inspects the most recent assistant turn inside the
// windowed history and, when it used emojis, tells the backend not to reuse
// them. Returns "" when there is nothing to steer away from.
func antiRepetitionDirective(windowed []types.AgentMessage) string {
	var lastAssistant string
	for i := len(windowed) - 1; i >= 0; i-- {
		if windowed[i].Role == "assistant" {
			lastAssistant = windowed[i].Content
			break
		}
	}
	emojis := rag.ExtractEmojis(lastAssistant)
	if len(emojis) == 0 {
		return ""
	}
	return fmt.Sprintf("Na sua resposta anterior você usou estes emojis: %s. Evite repetir os mesmos emojis nesta resposta.",
		strings.Join(emojis, " "))
}
