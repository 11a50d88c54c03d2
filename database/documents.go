package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"maxagent/rag"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ListDocuments returns up to limit documents in insertion order (oldest
// first). Ranking ties keep this order.
func (s *PostgresStore) ListDocuments(ctx context.Context, limit int) ([]rag.Document, error) {
	query := `
		SELECT id, filename, content, file_type, created_at
		FROM documents
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []rag.Document
	for rows.Next() {
		var doc rag.Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Content, &doc.FileType, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ListDocumentNames returns up to limit filename/created_at pairs, newest first.
func (s *PostgresStore) ListDocumentNames(ctx context.Context, limit int) ([]rag.DocumentInfo, error) {
	query := `
		SELECT filename, created_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list document names: %w", err)
	}
	defer rows.Close()

	var infos []rag.DocumentInfo
	for rows.Next() {
		var info rag.DocumentInfo
		if err := rows.Scan(&info.Filename, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document name: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// UpsertDocument stores a document, replacing any previous version with the
// same filename.
func (s *PostgresStore) UpsertDocument(ctx context.Context, id uuid.UUID, filename, content, fileType, contentHash string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	query := `
        INSERT INTO documents (id, filename, content, file_type, content_hash, tags, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (filename)
        DO UPDATE SET content = EXCLUDED.content, file_type = EXCLUDED.file_type,
                      content_hash = EXCLUDED.content_hash, tags = EXCLUDED.tags, created_at = NOW()
    `
	if _, err := s.DB.ExecContext(ctx, query, id, filename, content, fileType, contentHash, pq.Array(tags)); err != nil {
		return fmt.Errorf("failed to upsert document %q: %w", filename, err)
	}
	return nil
}

// FindDocumentByHash looks for an existing document with the same content
// hash. Returns uuid.Nil when none exists or the hash is empty.
func (s *PostgresStore) FindDocumentByHash(ctx context.Context, contentHash string) (uuid.UUID, error) {
	if contentHash == "" {
		return uuid.Nil, nil
	}
	const query = `SELECT id FROM documents WHERE content_hash = $1 LIMIT 1`

	var id uuid.UUID
	if err := s.DB.QueryRowContext(ctx, query, contentHash).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to lookup document by hash: %w", err)
	}
	return id, nil
}

// DeleteDocument removes one document by id. Returns sql.ErrNoRows when the
// id does not exist.
func (s *PostgresStore) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to determine rows deleted for document %s: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountDocuments returns the total number of stored documents.
func (s *PostgresStore) CountDocuments(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
