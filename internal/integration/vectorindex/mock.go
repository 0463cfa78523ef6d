package vectorindex

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector keeps points in memory and ranks by cosine similarity. It
// backs local runs without a Qdrant container and doubles as the index fake
// in usecase tests.
type MockConnector struct {
	mu     sync.RWMutex
	points map[string]entity.Chunk
	logger *zap.Logger

	// FailUpsertIDs lists vector ids whose upserts should fail, for
	// exercising partial-ingestion behavior.
	FailUpsertIDs map[string]bool
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		points: make(map[string]entity.Chunk),
		logger: logger,
	}
}

func (m *MockConnector) EnsureCollection(ctx context.Context) error {
	ctxzap.Info(ctx, "[MOCK] vector collection ready")
	return nil
}

func (m *MockConnector) Upsert(ctx context.Context, chunk *entity.Chunk) error {
	if m.FailUpsertIDs[chunk.VectorID()] {
		return entity.ErrIndexUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[chunk.VectorID()] = *chunk
	return nil
}

func (m *MockConnector) Search(
	ctx context.Context,
	vector []float32,
	userID string,
	documentIDs []string,
) ([]entity.Passage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scoped := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		scoped[id] = true
	}

	var passages []entity.Passage
	for _, chunk := range m.points {
		if chunk.UserID != userID {
			continue
		}
		if len(scoped) > 0 && !scoped[chunk.DocumentID] {
			continue
		}
		passages = append(passages, entity.Passage{
			DocumentID: chunk.DocumentID,
			Filename:   chunk.Filename,
			ChunkIndex: chunk.Index,
			Text:       chunk.Text,
			Score:      cosine(vector, chunk.Embedding),
		})
	}

	sort.Slice(passages, func(i, j int) bool { return passages[i].Score > passages[j].Score })
	if len(passages) > 5 {
		passages = passages[:5]
	}

	return passages, nil
}

func (m *MockConnector) DeleteByDocument(ctx context.Context, userID, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, chunk := range m.points {
		if chunk.UserID == userID && chunk.DocumentID == documentID {
			delete(m.points, id)
		}
	}
	return nil
}

// Len reports how many points are stored, for tests.
func (m *MockConnector) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.points)
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float32
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / float32(math.Sqrt(float64(na))*math.Sqrt(float64(nb)))
}
