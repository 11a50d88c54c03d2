package rag

import (
	"fmt"
	"testing"
)

func TestRankFieldWeightedScore(t *testing.T) {
	doc := Document{
		Filename: "Política de Férias",
		Content:  "As férias são um direito. As férias devem ser agendadas com antecedência. Boas férias!",
	}

	ranked := Rank("férias", []Document{doc})
	if len(ranked) != 1 {
		t.Fatalf("Rank returned %d documents, want 1", len(ranked))
	}

	// content word hits 3x10, content substring +5, filename substring +10.
	// The raw filename keeps its accent, so the word-boundary boost does not fire.
	if ranked[0].Score != 45 {
		t.Errorf("score = %d, want 45", ranked[0].Score)
	}
}

func TestRankFilenameWordBoost(t *testing.T) {
	doc := Document{
		Filename: "ferias.txt",
		Content:  "Documento sobre descanso remunerado.",
	}

	ranked := Rank("férias", []Document{doc})
	if len(ranked) != 1 {
		t.Fatalf("Rank returned %d documents, want 1", len(ranked))
	}

	// filename word 30 + filename substring 10; no content hits.
	if ranked[0].Score != 40 {
		t.Errorf("score = %d, want 40", ranked[0].Score)
	}
}

func TestRankExcludesZeroScores(t *testing.T) {
	docs := []Document{
		{Filename: "beneficios.txt", Content: "vale refeição e plano de saúde"},
		{Filename: "codigo de conduta.txt", Content: "respeito no ambiente de trabalho"},
	}

	ranked := Rank("férias", docs)
	if len(ranked) != 0 {
		t.Errorf("Rank returned %d documents for an unrelated query, want 0", len(ranked))
	}
}

func TestRankEmptyQueryTokens(t *testing.T) {
	docs := []Document{{Filename: "a.txt", Content: "conteúdo qualquer"}}

	// Stop words only: zero tokens, every document scores zero.
	if ranked := Rank("que isso", docs); len(ranked) != 0 {
		t.Errorf("Rank returned %d documents for a stop-word query, want 0", len(ranked))
	}
	if ranked := Rank("", docs); len(ranked) != 0 {
		t.Errorf("Rank returned %d documents for an empty query, want 0", len(ranked))
	}
}

func TestRankCapsAtFiveDocuments(t *testing.T) {
	var docs []Document
	for i := 0; i < 8; i++ {
		docs = append(docs, Document{
			Filename: fmt.Sprintf("doc%d.txt", i),
			Content:  "política de reembolso de despesas",
		})
	}

	ranked := Rank("reembolso", docs)
	if len(ranked) != maxRankedDocuments {
		t.Errorf("Rank returned %d documents, want %d", len(ranked), maxRankedDocuments)
	}
}

func TestRankTopHonorsCallerBound(t *testing.T) {
	var docs []Document
	for i := 0; i < 8; i++ {
		docs = append(docs, Document{
			Filename: fmt.Sprintf("doc%d.txt", i),
			Content:  "política de reembolso de despesas",
		})
	}

	if ranked := RankTop("reembolso", docs, 7); len(ranked) != 7 {
		t.Errorf("RankTop(k=7) returned %d documents, want 7", len(ranked))
	}
	if ranked := RankTop("reembolso", docs, 0); len(ranked) != 8 {
		t.Errorf("RankTop(k=0) returned %d documents, want all 8", len(ranked))
	}
}

func TestRankStableTieBreak(t *testing.T) {
	docs := []Document{
		{Filename: "primeiro.txt", Content: "reembolso de despesas"},
		{Filename: "segundo.txt", Content: "reembolso de viagens"},
		{Filename: "terceiro.txt", Content: "reembolso de equipamentos"},
	}

	ranked := Rank("reembolso", docs)
	if len(ranked) != 3 {
		t.Fatalf("Rank returned %d documents, want 3", len(ranked))
	}
	wantOrder := []string{"primeiro.txt", "segundo.txt", "terceiro.txt"}
	for i, want := range wantOrder {
		if ranked[i].Filename != want {
			t.Errorf("position %d = %q, want %q (retrieval order must hold on ties)", i, ranked[i].Filename, want)
		}
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	docs := []Document{
		{Filename: "mencao.txt", Content: "férias aparecem uma vez"},
		{Filename: "ferias.txt", Content: "férias férias férias em detalhe"},
	}

	ranked := Rank("férias", docs)
	if len(ranked) != 2 {
		t.Fatalf("Rank returned %d documents, want 2", len(ranked))
	}
	if ranked[0].Filename != "ferias.txt" {
		t.Errorf("top document = %q, want ferias.txt", ranked[0].Filename)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("scores not descending: %d then %d", ranked[0].Score, ranked[1].Score)
	}
}

func TestRankRepeatedQueryTokenAmplifiesScore(t *testing.T) {
	docs := []Document{{Filename: "doc.txt", Content: "reembolso de despesas"}}

	single := Rank("reembolso", docs)
	double := Rank("reembolso reembolso", docs)
	if len(single) != 1 || len(double) != 1 {
		t.Fatalf("expected one ranked document in both runs")
	}
	if double[0].Score != 2*single[0].Score {
		t.Errorf("repeated token score = %d, want %d", double[0].Score, 2*single[0].Score)
	}
}
