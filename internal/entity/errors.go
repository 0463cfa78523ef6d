package entity

import "errors"

// Domain errors
var (
	// Ingestion errors. Both reject the upload before anything is persisted.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("no text could be extracted from the document")

	// ErrEmbeddingFailed is per-chunk: the chunk is skipped and ingestion
	// continues, degrading chunks_processed instead of failing the document.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// Ask errors, both fatal to a single request.
	ErrQuestionEmbeddingFailed = errors.New("question embedding failed")
	ErrAnswerGenerationFailed  = errors.New("answer generation failed")

	// ErrIndexUnavailable degrades best-effort index deletion; relational
	// deletion still proceeds.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// Document errors
	ErrDocumentNotFound = errors.New("document not found or access denied")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnauthenticated  = errors.New("missing user identity")
)

// ErrorCode returns the stable machine-readable kind for a domain error, or
// "internal_error" for anything unrecognized.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFileType):
		return "unsupported_file_type"
	case errors.Is(err, ErrEmptyDocument):
		return "empty_document"
	case errors.Is(err, ErrEmbeddingFailed):
		return "embedding_failed"
	case errors.Is(err, ErrQuestionEmbeddingFailed):
		return "question_embedding_failed"
	case errors.Is(err, ErrAnswerGenerationFailed):
		return "answer_generation_failed"
	case errors.Is(err, ErrIndexUnavailable):
		return "index_unavailable"
	case errors.Is(err, ErrDocumentNotFound):
		return "document_not_found"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "internal_error"
	}
}
