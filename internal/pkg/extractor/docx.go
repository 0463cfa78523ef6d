package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/smartdoc/docqa-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

// extractDOCX joins the text of every paragraph run with newlines, matching
// how word processors delimit paragraphs. Legacy .doc uploads go through the
// same path; genuinely old binary .doc files fail to open and are reported
// as empty rather than crashing ingestion.
func extractDOCX(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable docx: %v", entity.ErrEmptyDocument, err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
