package rag

import (
	"strings"
	"testing"
)

func TestBuildContextEmpty(t *testing.T) {
	if got := BuildContext(nil); got != "" {
		t.Errorf("BuildContext(nil) = %q, want empty string", got)
	}
}

func TestBuildContextBlockFormat(t *testing.T) {
	docs := []ScoredDocument{
		{Document: Document{Filename: "ferias.txt", Content: "conteúdo sobre férias"}, Score: 45},
		{Document: Document{Filename: "reembolso.txt", Content: "conteúdo sobre reembolso"}, Score: 15},
	}

	got := BuildContext(docs)

	for _, want := range []string{
		"[DOCUMENTO: ferias.txt | relevância: 45]",
		"conteúdo sobre férias",
		"[DOCUMENTO: reembolso.txt | relevância: 15]",
		"[FIM DO DOCUMENTO]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildContext output missing %q\ngot:\n%s", want, got)
		}
	}

	if !strings.Contains(got, "[FIM DO DOCUMENTO]\n\n[DOCUMENTO:") {
		t.Errorf("blocks not separated by a blank line:\n%s", got)
	}
	if strings.Contains(got, truncationMarker) {
		t.Errorf("short content must not carry the truncation marker")
	}
}

func TestBuildContextTruncation(t *testing.T) {
	content := strings.Repeat("a", 4000)
	docs := []ScoredDocument{
		{Document: Document{Filename: "grande.txt", Content: content}, Score: 10},
	}

	got := BuildContext(docs)

	if !strings.Contains(got, strings.Repeat("a", maxRenderedChars)+truncationMarker) {
		t.Errorf("expected exactly %d characters of content followed by the marker", maxRenderedChars)
	}
	if strings.Contains(got, strings.Repeat("a", maxRenderedChars+1)) {
		t.Errorf("rendered content exceeds the %d character cap", maxRenderedChars)
	}
}

func TestBuildContextTruncationRuneSafe(t *testing.T) {
	content := strings.Repeat("ç", maxRenderedChars+100)
	docs := []ScoredDocument{
		{Document: Document{Filename: "acentuado.txt", Content: content}, Score: 10},
	}

	got := BuildContext(docs)
	if !strings.Contains(got, strings.Repeat("ç", maxRenderedChars)+truncationMarker) {
		t.Errorf("truncation must cut at a rune boundary")
	}
}
