package query

import (
	"testing"

	"github.com/smartdoc/docqa-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func passages(texts ...string) []entity.Passage {
	var ps []entity.Passage
	for i, text := range texts {
		ps = append(ps, entity.Passage{Text: text, ChunkIndex: i})
	}
	return ps
}

func TestIsRelevant_MatchingPassages(t *testing.T) {
	// Key terms: "what", "capital", "france" — all contained.
	relevant := isRelevant(
		"What is the capital of France?",
		passages("Paris is the capital of France."),
	)
	assert.True(t, relevant)
}

func TestIsRelevant_OffTopicPassages(t *testing.T) {
	relevant := isRelevant(
		"What is the capital of France?",
		passages("The weather today is sunny."),
	)
	assert.False(t, relevant)
}

func TestIsRelevant_NoPassages(t *testing.T) {
	assert.False(t, isRelevant("What is the capital of France?", nil))
}

func TestIsRelevant_BlankPassages(t *testing.T) {
	assert.False(t, isRelevant("What is the capital of France?", passages("", "   ", "\n")))
}

func TestIsRelevant_NoKeyTerms_DefaultsToRelevant(t *testing.T) {
	// No word reaches four characters, so irrelevance cannot be proven.
	assert.True(t, isRelevant("is it so?", passages("The weather today is sunny.")))
}

func TestIsRelevant_ThresholdBoundary(t *testing.T) {
	// Terms: "what", "capital", "france", "located" — one hit is 25%, below
	// the 30% threshold; two hits is 50%, above it.
	question := "What capital France located"

	assert.False(t, isRelevant(question, passages("the capital city")))
	assert.True(t, isRelevant(question, passages("the capital of france")))
}

func TestIsRelevant_SubstringContainment(t *testing.T) {
	// Matching is substring containment, not exact word match.
	assert.True(t, isRelevant("tokenizer", passages("pretokenizers split text")))
}

func TestIsRelevant_DuplicateTermsRetained(t *testing.T) {
	// "gopher" appears twice among {gopher, gopher, swim}; two of three
	// terms match even though only one distinct word is present.
	assert.True(t, isRelevant("gopher gopher swim", passages("a gopher burrow")))
}
