package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeStore struct {
	docs  []Document
	infos []DocumentInfo
	err   error
}

func (f *fakeStore) ListDocuments(ctx context.Context, limit int) ([]Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.docs) > limit {
		return f.docs[:limit], nil
	}
	return f.docs, nil
}

func (f *fakeStore) ListDocumentNames(ctx context.Context, limit int) ([]DocumentInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.infos) > limit {
		return f.infos[:limit], nil
	}
	return f.infos, nil
}

func newTestRAG(store DocumentStore) *RAG {
	logger, _ := zap.NewDevelopment()
	return New(store, logger)
}

func TestRelevantContextStoreFault(t *testing.T) {
	r := newTestRAG(&fakeStore{err: errors.New("connection refused")})

	got := r.RelevantContext(context.Background(), "férias")
	if got != msgStoreUnavailable {
		t.Errorf("RelevantContext on store fault = %q, want %q", got, msgStoreUnavailable)
	}
}

func TestRelevantContextNoDocuments(t *testing.T) {
	r := newTestRAG(&fakeStore{})

	got := r.RelevantContext(context.Background(), "férias")
	if got != msgNoDocuments {
		t.Errorf("RelevantContext on empty base = %q, want %q", got, msgNoDocuments)
	}
}

func TestRelevantContextNothingRelevantListsFilenames(t *testing.T) {
	r := newTestRAG(&fakeStore{docs: []Document{
		{Filename: "beneficios.txt", Content: "plano de saúde"},
		{Filename: "conduta.txt", Content: "respeito no trabalho"},
	}})

	got := r.RelevantContext(context.Background(), "xyzabc")
	if !strings.Contains(got, msgNothingRelevant) {
		t.Errorf("missing the no-relevant-documents message in %q", got)
	}
	for _, name := range []string{"beneficios.txt", "conduta.txt"} {
		if !strings.Contains(got, name) {
			t.Errorf("available filename %q not enumerated in %q", name, got)
		}
	}
}

func TestRelevantContextRankedBlock(t *testing.T) {
	r := newTestRAG(&fakeStore{docs: []Document{
		{Filename: "ferias.txt", Content: "As férias devem ser solicitadas com 30 dias de antecedência."},
	}})

	got := r.RelevantContext(context.Background(), "férias")
	if !strings.Contains(got, "[DOCUMENTO: ferias.txt") {
		t.Errorf("expected a rendered document block, got %q", got)
	}
}

func TestCatalog(t *testing.T) {
	now := time.Now()
	r := newTestRAG(&fakeStore{infos: []DocumentInfo{
		{Filename: "mais-recente.txt", CreatedAt: now},
		{Filename: "mais-antigo.txt", CreatedAt: now.Add(-time.Hour)},
	}})

	got := r.Catalog(context.Background())
	if !strings.Contains(got, "1. mais-recente.txt") || !strings.Contains(got, "2. mais-antigo.txt") {
		t.Errorf("catalog listing malformed:\n%s", got)
	}
}

func TestCatalogDegradedResults(t *testing.T) {
	if got := newTestRAG(&fakeStore{err: errors.New("boom")}).Catalog(context.Background()); got != msgStoreUnavailable {
		t.Errorf("Catalog on store fault = %q, want %q", got, msgStoreUnavailable)
	}
	if got := newTestRAG(&fakeStore{}).Catalog(context.Background()); got != msgNoDocuments {
		t.Errorf("Catalog on empty base = %q, want %q", got, msgNoDocuments)
	}
}
