package rag

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercase_passthrough", input: "ferias", want: "ferias"},
		{name: "case_folding", input: "FÉRIAS", want: "ferias"},
		{name: "diacritics", input: "Política de Férias", want: "politica de ferias"},
		{name: "mixed_marks", input: "ações, órgão, saúde", want: "acoes, orgao, saude"},
		{name: "digits_untouched", input: "Versão 2.0", want: "versao 2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "Política de Férias", "ações e reações", "já normalizado", "hello world 123"}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
