package agent

import (
	"fmt"
	"strings"

	"github.com/repgenie/repgenie/plugin/ai"
)

// historyWindow caps how many prior exchanges are fed to the model.
const historyWindow = 10

// buildMessages assembles the chat payload: system prompt, the most
// recent history window, then the current query.
func buildMessages(systemPrompt string, history []Exchange, query string) []ai.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]ai.Message, 0, len(history)*2+2)
	messages = append(messages, ai.Message{Role: "system", Content: systemPrompt})
	for _, ex := range history {
		messages = append(messages, ai.Message{Role: "user", Content: ex.Human})
		messages = append(messages, ai.Message{Role: "assistant", Content: ex.AI})
	}
	messages = append(messages, ai.Message{Role: "user", Content: query})
	return messages
}

// renderHistory flattens history into a plain-text transcript for
// prompts that take context inline rather than as chat turns.
func renderHistory(history []Exchange) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var sb strings.Builder
	for _, ex := range history {
		fmt.Fprintf(&sb, "Human: %s\n", ex.Human)
		fmt.Fprintf(&sb, "Assistant: %s\n", ex.AI)
	}
	return sb.String()
}
