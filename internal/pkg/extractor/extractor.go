// Package extractor converts raw uploaded file bytes into plain text.
//
// Individual page or paragraph failures never abort a document: they simply
// contribute no text. Only a document whose combined extracted text is blank
// is rejected, since there is nothing to chunk.
package extractor

import (
	"fmt"
	"strings"

	"github.com/smartdoc/docqa-backend/internal/entity"
)

// Extract dispatches on the declared file type and returns the combined plain
// text. It returns entity.ErrUnsupportedFileType for unknown types and
// entity.ErrEmptyDocument when nothing extractable was found.
func Extract(data []byte, fileType entity.FileType) (string, error) {
	var (
		text string
		err  error
	)

	switch fileType {
	case entity.FileTypePDF:
		text, err = extractPDF(data)
	case entity.FileTypeDOCX, entity.FileTypeDOC:
		text, err = extractDOCX(data)
	case entity.FileTypeTXT:
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFileType, fileType)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", entity.ErrEmptyDocument
	}

	return text, nil
}

// FileTypeFromFilename derives the declared file type from the filename
// extension, lower-cased.
func FileTypeFromFilename(filename string) (entity.FileType, error) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return "", fmt.Errorf("%w: missing extension in %q", entity.ErrUnsupportedFileType, filename)
	}

	ft := entity.FileType(strings.ToLower(filename[idx+1:]))
	if err := ft.Validate(); err != nil {
		return "", err
	}
	return ft, nil
}
