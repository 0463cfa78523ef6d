package entity

// UploadDocumentRequest carries one uploaded file through ingestion. UserID
// comes from the identity layer, never from the request body.
type UploadDocumentRequest struct {
	UserID   string
	Filename string
	Content  []byte
}

// UploadDocumentResult is returned to the caller once ingestion finalizes.
// ChunksProcessed may be lower than TotalChunks when some chunks were blank
// or failed to embed.
type UploadDocumentResult struct {
	DocumentID      string `json:"document_id"`
	Filename        string `json:"filename"`
	ChunksProcessed int    `json:"chunks_processed"`
	TotalChunks     int    `json:"total_chunks"`
}

// AskRequest is one question, optionally scoped to a set of the caller's
// documents. An empty DocumentIDs set searches all of the user's documents.
type AskRequest struct {
	UserID      string
	Question    string
	DocumentIDs []string
}

// ListDocumentsResult wraps a user's documents with the total count.
type ListDocumentsResult struct {
	Documents      []*Document `json:"documents"`
	TotalDocuments int         `json:"total_documents"`
}
