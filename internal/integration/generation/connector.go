package generation

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/config"
	"github.com/smartdoc/docqa-backend/internal/entity"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Connector generates answer text via the Gemini API. Single attempt per
// call: a generation failure is fatal to the ask request and surfaces as
// entity.ErrAnswerGenerationFailed.
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

// Generate produces an answer for the given prompt.
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx,
		c.config.GenerationModel,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrAnswerGenerationFailed, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response from model", entity.ErrAnswerGenerationFailed)
	}

	ctxzap.Info(ctx, "answer generated", zap.Int("answer_length", len(text)))

	return text, nil
}
