// Package rag implements the lexical retrieval core: normalization,
// tokenization, field-weighted ranking and bounded context assembly over the
// internal document base.
package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// maxFetchedDocuments bounds how much of the store one ranking pass reads.
	maxFetchedDocuments = 100

	// maxListedDocuments bounds the filename listing for list-intent queries.
	maxListedDocuments = 50
)

// User-facing degraded results. Store faults never escape as errors; the
// request still succeeds with one of these.
const (
	msgNoDocuments      = "Nenhum documento foi carregado na base de conhecimento ainda."
	msgNothingRelevant  = "Nenhuma informação relevante encontrada nos documentos."
	msgStoreUnavailable = "Não foi possível acessar os documentos internos no momento."
)

// DocumentInfo is the listing projection: filename plus creation time.
type DocumentInfo struct {
	Filename  string
	CreatedAt time.Time
}

// DocumentStore is the read surface the retrieval core needs from the
// document base.
type DocumentStore interface {
	// ListDocuments returns up to limit documents in retrieval order.
	ListDocuments(ctx context.Context, limit int) ([]Document, error)
	// ListDocumentNames returns up to limit filenames, newest first.
	ListDocumentNames(ctx context.Context, limit int) ([]DocumentInfo, error)
}

type RAG struct {
	store  DocumentStore
	logger *zap.Logger
}

func New(store DocumentStore, logger *zap.Logger) *RAG {
	return &RAG{store: store, logger: logger}
}

// RelevantContext ranks the document base against the query and assembles the
// context block for the system prompt. It always returns usable text: store
// faults and empty results degrade to explanatory messages.
func (r *RAG) RelevantContext(ctx context.Context, query string) string {
	docs, err := r.store.ListDocuments(ctx, maxFetchedDocuments)
	if err != nil {
		r.logger.Warn("Failed to list documents for ranking", zap.Error(err))
		return msgStoreUnavailable
	}
	if len(docs) == 0 {
		return msgNoDocuments
	}
	ranked := Rank(query, docs)
	if len(ranked) == 0 {
		names := make([]string, len(docs))
		for i, doc := range docs {
			names[i] = doc.Filename
		}
		return fmt.Sprintf("%s Documentos disponíveis: %s.", msgNothingRelevant, strings.Join(names, ", "))
	}
	r.logger.Debug("Assembled document context",
		zap.Int("candidates", len(docs)),
		zap.Int("ranked", len(ranked)),
		zap.Int("top_score", ranked[0].Score))
	return BuildContext(ranked)
}

// Catalog renders the document listing for list-intent queries, newest first,
// capped at 50 entries. Store faults degrade to a message.
func (r *RAG) Catalog(ctx context.Context) string {
	infos, err := r.store.ListDocumentNames(ctx, maxListedDocuments)
	if err != nil {
		r.logger.Warn("Failed to list document names", zap.Error(err))
		return msgStoreUnavailable
	}
	if len(infos) == 0 {
		return msgNoDocuments
	}
	var b strings.Builder
	b.WriteString("📄 Documentos disponíveis:\n")
	for i, info := range infos {
		fmt.Fprintf(&b, "%d. %s\n", i+1, info.Filename)
	}
	return strings.TrimRight(b.String(), "\n")
}
