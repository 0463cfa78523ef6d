package query

import (
	"regexp"
	"strings"

	"github.com/smartdoc/docqa-backend/internal/entity"
)

// keyTermPattern tokenizes a question into word tokens of four or more
// characters. The pattern, the substring matching below and the 0.3 threshold
// are a compatibility contract: changing any of them changes which questions
// fall back to ungrounded answers and therefore the confidence labels users
// see.
var keyTermPattern = regexp.MustCompile(`\b\w{4,}\b`)

const relevanceThreshold = 0.3

// isRelevant decides whether retrieved passages are on-topic enough to answer
// from. It is a deliberately cheap, explainable proxy for semantic relevance,
// not a second embedding pass: key terms from the question are matched by
// substring containment against the concatenated passage texts, and the
// passages count as relevant when at least 30% of the terms are found.
// Duplicate terms are retained on purpose; a question with no 4+ character
// words cannot prove irrelevance and defaults to relevant.
func isRelevant(question string, passages []entity.Passage) bool {
	if len(passages) == 0 {
		return false
	}

	allBlank := true
	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		if strings.TrimSpace(p.Text) != "" {
			allBlank = false
		}
		texts = append(texts, p.Text)
	}
	if allBlank {
		return false
	}

	keyTerms := keyTermPattern.FindAllString(strings.ToLower(question), -1)
	if len(keyTerms) == 0 {
		return true
	}

	haystack := strings.ToLower(strings.Join(texts, " "))
	found := 0
	for _, term := range keyTerms {
		if strings.Contains(haystack, term) {
			found++
		}
	}

	return float64(found)/float64(len(keyTerms)) >= relevanceThreshold
}
