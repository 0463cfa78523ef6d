package embedding

import (
	"context"
	"hash/fnv"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/entity"
	"go.uber.org/zap"
)

const mockDimension = 768

// MockConnector produces deterministic pseudo-embeddings from a text hash, so
// identical texts land near each other and local runs need no API key.
type MockConnector struct {
	logger *zap.Logger

	// FailTexts lists exact texts whose embedding should fail, for
	// exercising skip-on-failure behavior in tests.
	FailTexts map[string]bool
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return m.embed(ctx, text)
}

func (m *MockConnector) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return m.embed(ctx, text)
}

func (m *MockConnector) embed(ctx context.Context, text string) ([]float32, error) {
	if m.FailTexts[text] {
		return nil, entity.ErrEmbeddingFailed
	}

	ctxzap.Debug(ctx, "[MOCK] embedding generated", zap.Int("text_length", len(text)))

	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, mockDimension)
	for i := range vector {
		seed = seed*6364136223846793005 + 1442695040888963407
		vector[i] = float32(int64(seed>>33))/float32(1<<31) - 0.5
	}
	return vector, nil
}
