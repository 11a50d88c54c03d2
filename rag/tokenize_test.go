package rag

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
		{
			name:  "stop_words_and_short_tokens_dropped",
			input: "qual é a política de férias?",
			want:  []string{"politica", "ferias"},
		},
		{
			name:  "duplicates_kept",
			input: "férias férias férias",
			want:  []string{"ferias", "ferias", "ferias"},
		},
		{
			name:  "punctuation_split",
			input: "reembolso: viagem/hospedagem (2024)",
			want:  []string{"reembolso", "viagem", "hospedagem", "2024"},
		},
		{
			name:  "only_stop_words",
			input: "que isso para com ele",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeNeverReturnsShortOrStopTokens(t *testing.T) {
	tokens := Tokenize("O que você quer saber sobre a nossa empresa e os benefícios?")
	for _, token := range tokens {
		if len(token) < minTokenLength {
			t.Errorf("token %q shorter than %d characters", token, minTokenLength)
		}
		if _, stop := stopWords[token]; stop {
			t.Errorf("stop word %q leaked into tokens", token)
		}
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	input := "Como solicitar reembolso de despesas de viagem?"
	first := Tokenize(input)
	for i := 0; i < 10; i++ {
		if got := Tokenize(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tokenize not deterministic: %v vs %v", got, first)
		}
	}
}
