package rag

import (
	"fmt"
	"strings"
)

const (
	// maxRenderedChars caps each document's content inside the assembled context.
	maxRenderedChars = 3000

	truncationMarker = "... [conteúdo truncado]"
)

// BuildContext renders ranked documents into a single text block for the
// system prompt. Each document keeps its filename and score, content is capped
// at 3000 characters with a visible marker, and blocks are separated by blank
// lines. An empty input yields the empty string.
func BuildContext(docs []ScoredDocument) string {
	if len(docs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		content := doc.Content
		truncated := false
		if runes := []rune(content); len(runes) > maxRenderedChars {
			content = string(runes[:maxRenderedChars])
			truncated = true
		}
		fmt.Fprintf(&b, "[DOCUMENTO: %s | relevância: %d]\n", doc.Filename, doc.Score)
		b.WriteString(content)
		if truncated {
			b.WriteString(truncationMarker)
		}
		b.WriteString("\n[FIM DO DOCUMENTO]")
	}
	return b.String()
}
