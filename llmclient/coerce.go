package llmclient

import (
	"encoding/json"
	"strings"
)

// FallbackReply replaces an empty coerced reply; the pipeline never hands an
// empty response back to the caller.
const FallbackReply = "Não tenho informações suficientes para responder a essa pergunta com base nos documentos disponíveis."

// contentPart is one element of a part-list reply. Backends disagree on the
// field name, so both are tried.
type contentPart struct {
	Text    string `json:"text"`
	Content string `json:"content"`
}

// CoerceContent normalizes the backend's content field into a trimmed string.
// The field may be a plain string, a list of mixed parts (strings or objects
// exposing text/content), null, or something else entirely; unknown shapes are
// serialized best-effort, and nothing here ever fails. Worst case is the
// empty string, which the caller substitutes.
func CoerceContent(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return strings.TrimSpace(plain)
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err == nil {
		var b strings.Builder
		for _, part := range parts {
			b.WriteString(coercePart(part))
		}
		return strings.TrimSpace(b.String())
	}

	return strings.TrimSpace(string(raw))
}

func coercePart(raw json.RawMessage) string {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var part contentPart
	if err := json.Unmarshal(raw, &part); err == nil {
		if part.Text != "" {
			return part.Text
		}
		return part.Content
	}
	return ""
}
