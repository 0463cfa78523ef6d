package generation

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector returns canned answers for local runs and tests.
type MockConnector struct {
	logger *zap.Logger

	// Fail forces every generation call to fail.
	Fail bool
	// LastPrompt records the most recent prompt for assertions.
	LastPrompt string
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Fail {
		return "", entity.ErrAnswerGenerationFailed
	}

	m.LastPrompt = prompt
	ctxzap.Info(ctx, "[MOCK] answer generated", zap.Int("prompt_length", len(prompt)))

	if strings.Contains(prompt, "Context:") {
		return "Mock answer grounded on the provided document context.", nil
	}
	return "Mock answer from general knowledge.", nil
}
