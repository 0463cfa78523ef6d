package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartdoc/docqa-backend/internal/entity"
)

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	Create(ctx context.Context, doc entity.Document) (*entity.Document, error)
	Get(ctx context.Context, userID, id string) (*entity.Document, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Document, error)
	Delete(ctx context.Context, userID, id string) error
}

var _ DocumentRepository = &DocumentPostgres{}

// DocumentPostgres implements DocumentRepository using PostgreSQL
type DocumentPostgres struct {
	db *pgxpool.Pool
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

func (r *DocumentPostgres) Create(ctx context.Context, doc entity.Document) (*entity.Document, error) {
	docID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse document ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO documents (id, user_id, filename, file_type, total_chunks, chunks_processed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, filename, file_type, total_chunks, chunks_processed, created_at`,
		pgtype.UUID{Bytes: docID, Valid: true},
		doc.UserID,
		doc.Filename,
		string(doc.FileType),
		doc.TotalChunks,
		doc.ChunksProcessed,
	)

	saved, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	return saved, nil
}

func (r *DocumentPostgres) Get(ctx context.Context, userID, id string) (*entity.Document, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document ID format", entity.ErrInvalidParameter)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, filename, file_type, total_chunks, chunks_processed, created_at
		FROM documents
		WHERE id = $1 AND user_id = $2`,
		pgtype.UUID{Bytes: docID, Valid: true},
		userID,
	)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

func (r *DocumentPostgres) ListByUser(ctx context.Context, userID string) ([]*entity.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, filename, file_type, total_chunks, chunks_processed, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

func (r *DocumentPostgres) Delete(ctx context.Context, userID, id string) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid document ID format", entity.ErrInvalidParameter)
	}

	tag, err := r.db.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND user_id = $2`,
		pgtype.UUID{Bytes: docID, Valid: true},
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrDocumentNotFound
	}

	return nil
}
