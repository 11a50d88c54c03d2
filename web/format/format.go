package format

import (
	"strings"

	"github.com/gomarkdown/markdown"
)

// ToHTML renders assistant markdown to HTML for the response_html field.
// Plain listings pass through unchanged apart from paragraph wrapping.
func ToHTML(text string) string {
	if text == "" {
		return ""
	}
	html := markdown.ToHTML([]byte(text), nil, nil)
	return strings.TrimSpace(string(html))
}
