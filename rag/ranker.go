package rag

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is one entry of the internal knowledge base, read-only to ranking.
type Document struct {
	ID        uuid.UUID
	Filename  string
	Content   string
	FileType  string
	CreatedAt time.Time
}

// ScoredDocument pairs a document with its relevance score for one query.
type ScoredDocument struct {
	Document
	Score int
}

// Field-weighted boosts. A word-boundary hit is worth more than a bare
// substring hit, and filename hits outweigh content hits.
const (
	contentWordWeight      = 10
	contentSubstringBonus  = 5
	filenameWordWeight     = 30
	filenameSubstringBonus = 10

	// maxRankedDocuments bounds the top-K result.
	maxRankedDocuments = 5
)

// Rank scores every document against the query tokens and returns up to five
// ScoredDocuments in descending score order. Zero-score documents are dropped.
// The sort is stable: equal scores keep their store-retrieval order.
func Rank(query string, docs []Document) []ScoredDocument {
	return RankTop(query, docs, maxRankedDocuments)
}

// RankTop is Rank with a caller-chosen result bound; k <= 0 means unbounded.
func RankTop(query string, docs []Document, k int) []ScoredDocument {
	tokens := Tokenize(query)
	patterns := make([]*regexp.Regexp, len(tokens))
	for i, token := range tokens {
		patterns[i] = wordBoundaryPattern(token)
	}
	scored := make([]ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		if score := scoreDocument(tokens, patterns, doc); score > 0 {
			scored = append(scored, ScoredDocument{Document: doc, Score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// scoreDocument sums the boosts of every query token. Substring bonuses are
// flat and stack on top of word-boundary counts for the same occurrence; the
// word boost for filenames runs against the raw filename, so accented names
// only collect the substring bonus. patterns[i] is the word matcher for
// tokens[i], compiled once per query.
func scoreDocument(tokens []string, patterns []*regexp.Regexp, doc Document) int {
	content := Normalize(doc.Content)
	filename := Normalize(doc.Filename)
	score := 0
	for i, token := range tokens {
		wordRe := patterns[i]
		score += len(wordRe.FindAllStringIndex(content, -1)) * contentWordWeight
		if strings.Contains(content, token) {
			score += contentSubstringBonus
		}
		score += len(wordRe.FindAllStringIndex(doc.Filename, -1)) * filenameWordWeight
		if strings.Contains(filename, token) {
			score += filenameSubstringBonus
		}
	}
	return score
}

// wordBoundaryPattern builds a case-insensitive exact-word matcher. Tokens
// only ever contain [a-z0-9], so no escaping is needed.
func wordBoundaryPattern(token string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + token + `\b`)
}
