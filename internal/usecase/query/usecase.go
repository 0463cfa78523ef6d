package query

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/entity"
	"go.uber.org/zap"
)

const minChunksForHighConfidence = 3

// QueryUsecase answers one question from the caller's indexed documents:
// embed the question, search under the tenant filter, gate the retrieved
// passages for relevance, then synthesize the answer. The pipeline is
// strictly sequential per request and holds no shared mutable state, so
// independent requests are fully independent.
type QueryUsecase struct {
	embedder  Embedder
	index     VectorIndex
	generator Generator
	logger    *zap.Logger
}

func NewUsecase(
	embedder Embedder,
	index VectorIndex,
	generator Generator,
	logger *zap.Logger,
) *QueryUsecase {
	return &QueryUsecase{
		embedder:  embedder,
		index:     index,
		generator: generator,
		logger:    logger,
	}
}

// Ask answers the question, scoped to the caller's documents (optionally to
// an explicit document id set). Question embedding and answer generation
// failures are fatal to the request; an off-topic or empty retrieval result
// degrades to an ungrounded answer with confidence "general".
func (uc *QueryUsecase) Ask(ctx context.Context, req *entity.AskRequest) (*entity.Answer, error) {
	if req.Question == "" {
		return nil, fmt.Errorf("%w: question", entity.ErrMissingField)
	}

	vector, err := uc.embedder.EmbedQuery(ctx, req.Question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrQuestionEmbeddingFailed, err)
	}

	passages, err := uc.index.Search(ctx, vector, req.UserID, req.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	ctxzap.Info(ctx, "passages retrieved",
		zap.Int("passage_count", len(passages)),
		zap.Int("scoped_documents", len(req.DocumentIDs)),
	)

	if !isRelevant(req.Question, passages) {
		ctxzap.Info(ctx, "retrieved context not relevant, answering from general knowledge")
		return uc.answerUngrounded(ctx, req.Question)
	}

	answer, err := uc.generator.Generate(ctx, buildPrompt(req.Question, passages))
	if err != nil {
		return nil, err
	}

	confidence := entity.ConfidenceMedium
	if len(passages) >= minChunksForHighConfidence {
		confidence = entity.ConfidenceHigh
	}

	sources := make([]entity.Source, 0, len(passages))
	for _, p := range passages {
		sources = append(sources, entity.Source{
			Filename:   p.Filename,
			ChunkIndex: p.ChunkIndex,
		})
	}

	return &entity.Answer{
		Text:              answer,
		Confidence:        confidence,
		Sources:           sources,
		ContextChunksUsed: len(passages),
	}, nil
}

func (uc *QueryUsecase) answerUngrounded(ctx context.Context, question string) (*entity.Answer, error) {
	answer, err := uc.generator.Generate(ctx, question)
	if err != nil {
		return nil, err
	}

	return &entity.Answer{
		Text:              answer,
		Confidence:        entity.ConfidenceGeneral,
		Sources:           []entity.Source{},
		ContextChunksUsed: 0,
	}, nil
}
