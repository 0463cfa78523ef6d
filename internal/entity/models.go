package entity

import (
	"fmt"
	"time"
)

type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeDOC  FileType = "doc"
	FileTypeTXT  FileType = "txt"
)

func (ft FileType) Validate() error {
	switch ft {
	case FileTypePDF, FileTypeDOCX, FileTypeDOC, FileTypeTXT:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, ft)
	}
}

// Confidence labels attached to answers. The label is derived from how much
// document context backed the generation, not from model introspection.
type Confidence string

const (
	// ConfidenceGeneral marks answers generated without document context.
	ConfidenceGeneral Confidence = "general"
	// ConfidenceMedium marks answers grounded on fewer than three chunks.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceHigh marks answers grounded on three or more chunks.
	ConfidenceHigh Confidence = "high"
)

// Document is the relational record of one ingested upload. Chunk bodies live
// only in the vector index; the record tracks identity and ingestion counters.
// ChunksProcessed <= TotalChunks always; a gap means some chunks were skipped
// (blank text or failed embedding) and the document is partially searchable.
type Document struct {
	ID              string    `json:"document_id"`
	UserID          string    `json:"user_id"`
	Filename        string    `json:"filename"`
	FileType        FileType  `json:"file_type"`
	TotalChunks     int       `json:"total_chunks"`
	ChunksProcessed int       `json:"chunks_processed"`
	CreatedAt       time.Time `json:"created_at"`
}

// Chunk is one indexed passage of a document. It exists only inside the
// vector index; the deterministic VectorID doubles as an overwrite mechanism
// when the same document id is re-ingested.
type Chunk struct {
	DocumentID string
	Filename   string
	Index      int
	ChunkCount int
	UserID     string
	Text       string
	Embedding  []float32
}

// VectorID returns the logical chunk id "{document_id}_chunk_{index}". The
// vector index derives its own point id from it deterministically.
func (c *Chunk) VectorID() string {
	return fmt.Sprintf("%s_chunk_%d", c.DocumentID, c.Index)
}

// Passage is a retrieved chunk with its similarity score, as returned by the
// vector index in rank order (best match first).
type Passage struct {
	DocumentID string
	Filename   string
	ChunkIndex int
	Text       string
	Score      float32
}

// Source points at the passage an answer was grounded on.
type Source struct {
	Filename   string `json:"filename"`
	ChunkIndex int    `json:"chunk_index"`
}

// Answer is the result of one ask request.
type Answer struct {
	Text              string     `json:"answer"`
	Confidence        Confidence `json:"confidence"`
	Sources           []Source   `json:"sources"`
	ContextChunksUsed int        `json:"context_chunks_used"`
}
