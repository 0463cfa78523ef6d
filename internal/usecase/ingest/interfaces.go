package ingest

import (
	"context"

	"github.com/smartdoc/docqa-backend/internal/entity"
)

type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
}

type VectorIndex interface {
	Upsert(ctx context.Context, chunk *entity.Chunk) error
	DeleteByDocument(ctx context.Context, userID, documentID string) error
}
