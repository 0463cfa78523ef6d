package query

import (
	"fmt"
	"strings"

	"github.com/smartdoc/docqa-backend/internal/entity"
)

// buildPrompt embeds the retrieved passages as grounding context ahead of the
// question. The instruction explicitly asks the model to fall back to general
// knowledge rather than refuse when the context does not contain the answer.
func buildPrompt(question string, passages []entity.Passage) string {
	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		texts = append(texts, p.Text)
	}

	return fmt.Sprintf(`Based on the following context from uploaded documents, please answer the question.
If the answer cannot be found in the context, please provide a general answer based on your knowledge instead of saying you don't know.

Context:
%s

Question: %s

Answer:`, strings.Join(texts, "\n\n"), question)
}
