package handlers

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"maxagent/config"
	"maxagent/database"
	apperrors "maxagent/errors"
	"maxagent/ingest"
	"maxagent/rag"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxUploadBytes   = 20 << 20 // 20 MiB
	defaultSearchK   = 5
	maxSearchResults = 10
)

type DocumentsHandler struct {
	store  *database.PostgresStore
	ingest *ingest.Service
	cfg    *config.Config
	logger *zap.Logger
}

type DocumentSummary struct {
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

type SearchResult struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	Score    int       `json:"score"`
}

func NewDocumentsHandler(store *database.PostgresStore, ingestService *ingest.Service, cfg *config.Config, logger *zap.Logger) *DocumentsHandler {
	return &DocumentsHandler{store: store, ingest: ingestService, cfg: cfg, logger: logger}
}

// List handles GET /api/documents: filenames newest first, capped at 50.
func (h *DocumentsHandler) List(c *gin.Context) {
	infos, err := h.store.ListDocumentNames(c.Request.Context(), 50)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, err,
			"Não foi possível listar os documentos.", h.logger)
		return
	}
	summaries := make([]DocumentSummary, len(infos))
	for i, info := range infos {
		summaries[i] = DocumentSummary{Filename: info.Filename, CreatedAt: info.CreatedAt}
	}
	c.JSON(http.StatusOK, gin.H{"documents": summaries})
}

// Search handles GET /api/documents/search?q=...&k=...: ranked lexical search
// over the document base.
func (h *DocumentsHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondWithClientError(c, http.StatusBadRequest, "O parâmetro de busca 'q' é obrigatório.")
		return
	}
	k := defaultSearchK
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithClientError(c, http.StatusBadRequest, "O parâmetro 'k' deve ser um inteiro positivo.")
			return
		}
		k = min(parsed, maxSearchResults)
	}

	docs, err := h.store.ListDocuments(c.Request.Context(), 100)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, err,
			"Não foi possível acessar os documentos.", h.logger)
		return
	}

	ranked := rag.RankTop(query, docs, k)
	results := make([]SearchResult, len(ranked))
	for i, doc := range ranked {
		results[i] = SearchResult{ID: doc.ID, Filename: doc.Filename, Score: doc.Score}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Upload handles POST /api/documents: a multipart file plus optional tags.
func (h *DocumentsHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondWithClientError(c, http.StatusBadRequest, "Nenhum arquivo enviado.")
		return
	}
	if file.Size > maxUploadBytes {
		respondWithClientError(c, http.StatusRequestEntityTooLarge, "Arquivo muito grande.")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, err,
			"Não foi possível ler o arquivo enviado.", h.logger)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, err,
			"Não foi possível ler o arquivo enviado.", h.logger)
		return
	}

	tags := c.PostFormArray("tags")
	doc, err := h.ingest.IngestFile(c.Request.Context(), file.Filename, data, tags)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnsupportedFileType):
			respondWithClientError(c, http.StatusBadRequest,
				"Tipo de arquivo não suportado. Envie .pdf, .txt ou .md.")
		case errors.Is(err, ingest.ErrDuplicateDocument):
			respondWithClientError(c, http.StatusConflict, "Este arquivo já foi processado anteriormente.")
		case apperrors.IsInvalidInput(err):
			respondWithClientError(c, http.StatusBadRequest, "Nome de arquivo inválido.")
		default:
			respondWithError(c, http.StatusInternalServerError, err,
				"Erro ao processar o arquivo.", h.logger)
		}
		return
	}

	h.logger.Info("Document ingested",
		zap.String("filename", doc.Filename),
		zap.String("id", doc.ID.String()))
	c.JSON(http.StatusCreated, gin.H{"id": doc.ID, "filename": doc.Filename})
}

// Delete handles DELETE /api/documents/:id.
func (h *DocumentsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondWithClientError(c, http.StatusBadRequest, "Identificador de documento inválido.")
		return
	}
	if err := h.store.DeleteDocument(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithClientError(c, http.StatusNotFound, "Documento não encontrado.")
			return
		}
		respondWithError(c, http.StatusInternalServerError, err,
			"Erro ao remover o documento.", h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/stats.
func (h *DocumentsHandler) Stats(c *gin.Context) {
	count, err := h.store.CountDocuments(c.Request.Context())
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, err,
			"Não foi possível obter as estatísticas.", h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_documents": count,
		"model":           h.cfg.Model,
	})
}
