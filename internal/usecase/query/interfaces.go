package query

import (
	"context"

	"github.com/smartdoc/docqa-backend/internal/entity"
)

type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type VectorIndex interface {
	Search(ctx context.Context, vector []float32, userID string, documentIDs []string) ([]entity.Passage, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
