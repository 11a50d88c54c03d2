// Package ingest turns uploaded files into plain-text documents in the store.
package ingest

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"maxagent/config"
	apperrors "maxagent/errors"
	"maxagent/utils"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"
	"github.com/jdkato/prose/v2"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ErrDuplicateDocument is returned when a file with identical content was
// already ingested.
var ErrDuplicateDocument = errors.New("duplicate document")

// Store is the write surface ingest needs from the document base.
type Store interface {
	UpsertDocument(ctx context.Context, id uuid.UUID, filename, content, fileType, contentHash string, tags []string) error
	FindDocumentByHash(ctx context.Context, contentHash string) (uuid.UUID, error)
}

// Result identifies a stored document.
type Result struct {
	ID       uuid.UUID
	Filename string
}

type Service struct {
	store  Store
	cfg    *config.Config
	logger *zap.Logger
}

func New(store Store, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{store: store, cfg: cfg, logger: logger}
}

// IngestFile extracts plain text from an uploaded file and stores it. PDF,
// markdown and plain text are supported. Identical content (by hash) is
// rejected as a duplicate; oversized content is truncated at a sentence
// boundary.
func (s *Service) IngestFile(ctx context.Context, filename string, data []byte, tags []string) (Result, error) {
	sanitized := utils.SanitizeFilename(filename)
	if sanitized == "" {
		return Result{}, apperrors.WrapError(apperrors.ErrInvalidInput, "unusable filename")
	}

	ext := strings.ToLower(filepath.Ext(sanitized))
	var content string
	var err error
	switch ext {
	case ".pdf":
		content, err = extractPDFText(data)
	case ".md":
		content = stripMarkdown(data)
	case ".txt":
		content = string(data)
	default:
		return Result{}, apperrors.WrapErrorf(apperrors.ErrUnsupportedFileType, "extension %q", ext)
	}
	if err != nil {
		return Result{}, fmt.Errorf("extract text from %q: %w", sanitized, err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return Result{}, apperrors.WrapError(apperrors.ErrInvalidInput, "file has no extractable text")
	}

	sum := md5.Sum([]byte(content))
	contentHash := hex.EncodeToString(sum[:])
	existing, err := s.store.FindDocumentByHash(ctx, contentHash)
	if err != nil {
		return Result{}, apperrors.WrapError(apperrors.ErrDatabaseOperation, err.Error())
	}
	if existing != uuid.Nil {
		return Result{}, ErrDuplicateDocument
	}

	content = s.truncateAtSentenceBoundary(content, s.cfg.MaxDocumentChars)

	id := uuid.New()
	if err := s.store.UpsertDocument(ctx, id, sanitized, content, ext, contentHash, tags); err != nil {
		return Result{}, apperrors.WrapError(apperrors.ErrDatabaseOperation, err.Error())
	}

	s.logger.Info("Stored document",
		zap.String("filename", sanitized),
		zap.String("file_type", ext),
		zap.Int("chars", len(content)))
	return Result{ID: id, Filename: sanitized}, nil
}

// extractPDFText pulls the plain text of every page, skipping pages that fail
// to decode.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var fullText strings.Builder
	totalPages := reader.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		fmt.Fprintf(&fullText, "[Página %d]\n%s\n\n", pageNum, text)
	}
	return fullText.String(), nil
}

// stripMarkdown flattens a markdown document to its text content so ranking
// does not score formatting syntax.
func stripMarkdown(data []byte) string {
	doc := parser.New().Parse(data)

	var b strings.Builder
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if entering {
			switch n := node.(type) {
			case *ast.Text:
				b.Write(n.Literal)
			case *ast.Code:
				b.Write(n.Literal)
			case *ast.CodeBlock:
				b.Write(n.Literal)
				b.WriteString("\n")
			}
			return ast.GoToNext
		}
		switch node.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.TableCell:
			b.WriteString("\n")
		}
		return ast.GoToNext
	})
	return b.String()
}

// truncateAtSentenceBoundary cuts oversized content at the last full sentence
// under the limit; if segmentation fails, it cuts at the character boundary.
func (s *Service) truncateAtSentenceBoundary(text string, maxChars int) string {
	if maxChars <= 0 || len([]rune(text)) <= maxChars {
		return text
	}

	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		s.logger.Warn("Sentence segmentation failed, truncating at character boundary", zap.Error(err))
		return string([]rune(text)[:maxChars])
	}

	var b strings.Builder
	used := 0
	for _, sent := range doc.Sentences() {
		sentLen := len([]rune(sent.Text)) + 1
		if used+sentLen > maxChars {
			break
		}
		b.WriteString(sent.Text)
		b.WriteString(" ")
		used += sentLen
	}
	truncated := strings.TrimSpace(b.String())
	if truncated == "" {
		return string([]rune(text)[:maxChars])
	}
	return truncated
}
