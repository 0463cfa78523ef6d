package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/smartdoc/docqa-backend/internal/entity"
)

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		id        pgtype.UUID
		fileType  string
		doc       entity.Document
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &doc.UserID, &doc.Filename, &fileType, &doc.TotalChunks, &doc.ChunksProcessed, &createdAt)
	if err != nil {
		return nil, err
	}

	doc.ID = uuid.UUID(id.Bytes).String()
	doc.FileType = entity.FileType(fileType)
	doc.CreatedAt = createdAt.Time

	return &doc, nil
}
