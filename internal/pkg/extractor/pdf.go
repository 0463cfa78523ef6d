package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/smartdoc/docqa-backend/internal/entity"
)

// extractPDF walks the document page by page so that a single malformed page
// loses only its own text. A file that cannot be opened at all yields an
// empty document.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable pdf: %v", entity.ErrEmptyDocument, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}
