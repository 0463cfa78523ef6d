package query

import (
	"context"
	"testing"

	"github.com/smartdoc/docqa-backend/internal/entity"
	"github.com/smartdoc/docqa-backend/internal/integration/embedding"
	"github.com/smartdoc/docqa-backend/internal/integration/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeIndex returns canned passages and records the filter arguments.
type fakeIndex struct {
	passages    []entity.Passage
	lastUserID  string
	lastDocIDs  []string
	searchError error
}

func (f *fakeIndex) Search(_ context.Context, _ []float32, userID string, documentIDs []string) ([]entity.Passage, error) {
	f.lastUserID = userID
	f.lastDocIDs = documentIDs
	if f.searchError != nil {
		return nil, f.searchError
	}
	return f.passages, nil
}

func newTestUsecase(index *fakeIndex) (*QueryUsecase, *embedding.MockConnector, *generation.MockConnector) {
	logger := zap.NewNop()
	embedder := embedding.NewMockConnector(logger)
	generator := generation.NewMockConnector(logger)
	return NewUsecase(embedder, index, generator, logger), embedder, generator
}

func TestAsk_GroundedAnswerHighConfidence(t *testing.T) {
	index := &fakeIndex{passages: []entity.Passage{
		{Filename: "france.pdf", ChunkIndex: 2, Text: "Paris is the capital of France."},
		{Filename: "france.pdf", ChunkIndex: 5, Text: "France is a country in Europe, its capital is Paris."},
		{Filename: "geo.txt", ChunkIndex: 0, Text: "Capital cities of France and Spain."},
	}}
	uc, _, generator := newTestUsecase(index)

	answer, err := uc.Ask(context.Background(), &entity.AskRequest{
		UserID:   "user-1",
		Question: "What is the capital of France?",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ConfidenceHigh, answer.Confidence)
	assert.Equal(t, 3, answer.ContextChunksUsed)
	// Sources preserve retrieval rank order.
	assert.Equal(t, []entity.Source{
		{Filename: "france.pdf", ChunkIndex: 2},
		{Filename: "france.pdf", ChunkIndex: 5},
		{Filename: "geo.txt", ChunkIndex: 0},
	}, answer.Sources)
	assert.Contains(t, generator.LastPrompt, "Context:")
	assert.Contains(t, generator.LastPrompt, "Paris is the capital of France.")
	assert.Equal(t, "user-1", index.lastUserID)
}

func TestAsk_TwoChunksMediumConfidence(t *testing.T) {
	index := &fakeIndex{passages: []entity.Passage{
		{Filename: "france.pdf", ChunkIndex: 0, Text: "Paris is the capital of France."},
		{Filename: "france.pdf", ChunkIndex: 1, Text: "The capital of France is Paris."},
	}}
	uc, _, _ := newTestUsecase(index)

	answer, err := uc.Ask(context.Background(), &entity.AskRequest{
		UserID:   "user-1",
		Question: "What is the capital of France?",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ConfidenceMedium, answer.Confidence)
	assert.Equal(t, 2, answer.ContextChunksUsed)
}

func TestAsk_IrrelevantContextFallsBackToGeneral(t *testing.T) {
	index := &fakeIndex{passages: []entity.Passage{
		{Filename: "weather.txt", ChunkIndex: 0, Text: "The weather today is sunny."},
	}}
	uc, _, generator := newTestUsecase(index)

	answer, err := uc.Ask(context.Background(), &entity.AskRequest{
		UserID:   "user-1",
		Question: "What is the capital of France?",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ConfidenceGeneral, answer.Confidence)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 0, answer.ContextChunksUsed)
	assert.NotContains(t, generator.LastPrompt, "Context:")
}

func TestAsk_EmptyRetrievalFallsBackToGeneral(t *testing.T) {
	uc, _, _ := newTestUsecase(&fakeIndex{})

	answer, err := uc.Ask(context.Background(), &entity.AskRequest{
		UserID:   "user-1",
		Question: "What is the capital of France?",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ConfidenceGeneral, answer.Confidence)
	assert.Empty(t, answer.Sources)
}

func TestAsk_DocumentScopeForwardedToIndex(t *testing.T) {
	index := &fakeIndex{}
	uc, _, _ := newTestUsecase(index)

	_, err := uc.Ask(context.Background(), &entity.AskRequest{
		UserID:      "user-1",
		Question:    "What is the capital of France?",
		DocumentIDs: []string{"doc-a", "doc-b"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"doc-a", "doc-b"}, index.lastDocIDs)
}

func TestAsk_QuestionEmbeddingFailureIsFatal(t *testing.T) {
	uc, embedder, _ := newTestUsecase(&fakeIndex{})
	embedder.FailTexts = map[string]bool{"What is the capital of France?": true}

	_, err := uc.Ask(context.Background(), &entity.AskRequest{
		UserID:   "user-1",
		Question: "What is the capital of France?",
	})
	assert.ErrorIs(t, err, entity.ErrQuestionEmbeddingFailed)
}

func TestAsk_GenerationFailureIsFatal(t *testing.T) {
	index := &fakeIndex{passages: []entity.Passage{
		{Filename: "france.pdf", ChunkIndex: 0, Text: "Paris is the capital of France."},
	}}
	uc, _, generator := newTestUsecase(index)
	generator.Fail = true

	_, err := uc.Ask(context.Background(), &entity.AskRequest{
		UserID:   "user-1",
		Question: "What is the capital of France?",
	})
	assert.ErrorIs(t, err, entity.ErrAnswerGenerationFailed)
}

func TestAsk_EmptyQuestionRejected(t *testing.T) {
	uc, _, _ := newTestUsecase(&fakeIndex{})

	_, err := uc.Ask(context.Background(), &entity.AskRequest{UserID: "user-1"})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}
