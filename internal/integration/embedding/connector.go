package embedding

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Task types understood by the Gemini embedding models. Documents and queries
// are embedded asymmetrically.
const (
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Connector produces embedding vectors via the Gemini API. Every call is a
// single attempt; a failure means "no vector produced" and the caller decides
// whether that skips a chunk or fails the request.
type Connector struct {
	client *genai.Client
	config config.GeminiConfig
	logger *zap.Logger
}

func NewConnector(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Connector, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Connector{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// EmbedDocument embeds one chunk of document text.
func (c *Connector) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, text, taskRetrievalDocument)
}

// EmbedQuery embeds a user question for similarity search.
func (c *Connector) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, text, taskRetrievalQuery)
}

func (c *Connector) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	resp, err := c.client.Models.EmbedContent(ctx,
		c.config.EmbeddingModel,
		genai.Text(text),
		&genai.EmbedContentConfig{TaskType: taskType},
	)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embed content: empty embedding in response")
	}

	vector := resp.Embeddings[0].Values
	ctxzap.Debug(ctx, "embedding generated",
		zap.String("task_type", taskType),
		zap.Int("dimension", len(vector)),
	)

	return vector, nil
}
