package rag

import "regexp"

// The classifier is a narrow heuristic: it only needs to catch "what documents
// do you have" style questions so the handler can answer with a plain listing
// instead of a generation call. False negatives fall through to ranking.
var (
	listAskPattern = regexp.MustCompile(
		`\b(?:quais|qual|que|lista|listar|liste|mostrar|mostre|quantos)(?:\s+\S+){0,2}\s+documentos\b` +
			`|\bdocumentos\b(?:\s+\S+){0,2}\s+(?:quais|tem|existem|disponiveis|carregados)\b`)
	docBasePattern = regexp.MustCompile(
		`\b(?:base|repositorio|banco)\s+de\s+(?:documentos|conhecimento)\b`)
)

// IsDocumentListQuery reports whether the query asks for the document listing
// rather than an answer, matched over the normalized query.
func IsDocumentListQuery(query string) bool {
	q := Normalize(query)
	return listAskPattern.MatchString(q) || docBasePattern.MatchString(q)
}
