package rag

import "regexp"

// minTokenLength drops short connective words before the stop-word check runs.
const minTokenLength = 3

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// stopWords lists Portuguese pronouns, prepositions, question words and a few
// high-frequency verbs, in normalized (lowercase, diacritic-free) form.
// Entries shorter than minTokenLength are already removed by the length filter.
var stopWords = map[string]struct{}{
	"que": {}, "qual": {}, "quais": {}, "como": {}, "quando": {}, "onde": {},
	"quem": {}, "porque": {}, "quanto": {}, "quantos": {},
	"com": {}, "para": {}, "por": {}, "sem": {}, "sob": {}, "sobre": {},
	"entre": {}, "ate": {}, "desde": {}, "apos": {},
	"dos": {}, "das": {}, "nos": {}, "nas": {}, "uma": {}, "uns": {}, "umas": {},
	"mas": {}, "mais": {}, "pelo": {}, "pela": {}, "pelos": {}, "pelas": {},
	"ele": {}, "ela": {}, "eles": {}, "elas": {}, "voce": {}, "voces": {},
	"meu": {}, "minha": {}, "meus": {}, "minhas": {},
	"seu": {}, "sua": {}, "seus": {}, "suas": {},
	"este": {}, "esta": {}, "estes": {}, "estas": {},
	"isso": {}, "isto": {}, "aquele": {}, "aquela": {}, "aquilo": {},
	"tem": {}, "ter": {}, "sao": {}, "ser": {}, "estao": {}, "foi": {}, "era": {},
}

// Tokenize normalizes text and splits it into significant word tokens: runs of
// [a-z0-9] longer than two characters that are not stop words. Duplicates are
// kept, so a repeated query term amplifies its score.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	words := tokenPattern.FindAllString(normalized, -1)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) < minTokenLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
