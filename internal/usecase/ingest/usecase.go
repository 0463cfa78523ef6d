package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/entity"
	"github.com/smartdoc/docqa-backend/internal/pkg/chunker"
	"github.com/smartdoc/docqa-backend/internal/pkg/extractor"
	"github.com/smartdoc/docqa-backend/internal/pkg/validator"
	"github.com/smartdoc/docqa-backend/internal/repository"
	"go.uber.org/zap"
)

// IngestUsecase turns one uploaded file into indexed, queryable chunks:
// extract, chunk, embed, upsert, then persist the document record with its
// final counters. Chunk-level failures never roll the document back; the
// document finalizes with whatever subset succeeded, which keeps a partially
// searchable document available instead of failing the whole upload.
//
// Uploads always mint a fresh document id, so no two ingestion runs can race
// on the same deterministic chunk ids. Anything that re-ingests under an
// existing id must serialize those runs itself.
type IngestUsecase struct {
	docRepo  repository.DocumentRepository
	chunker  *chunker.Chunker
	embedder Embedder
	index    VectorIndex
	logger   *zap.Logger
}

func NewUsecase(
	docRepo repository.DocumentRepository,
	chunks *chunker.Chunker,
	embedder Embedder,
	index VectorIndex,
	logger *zap.Logger,
) *IngestUsecase {
	return &IngestUsecase{
		docRepo:  docRepo,
		chunker:  chunks,
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// UploadDocument validates, extracts and indexes one uploaded file. Rejected
// uploads (unsupported type, empty document) persist nothing. On success the
// document record is created with total and processed chunk counts.
func (uc *IngestUsecase) UploadDocument(
	ctx context.Context,
	req *entity.UploadDocumentRequest,
) (*entity.UploadDocumentResult, error) {
	filename := validator.SanitizeFilename(req.Filename)

	fileType, err := extractor.FileTypeFromFilename(filename)
	if err != nil {
		return nil, err
	}

	text, err := extractor.Extract(req.Content, fileType)
	if err != nil {
		return nil, err
	}

	chunks := uc.chunker.Chunk(text)
	documentID := uuid.New().String()

	ctxzap.Info(ctx, "document extracted and chunked",
		zap.String("document_id", documentID),
		zap.String("filename", filename),
		zap.String("file_type", string(fileType)),
		zap.Int("total_chunks", len(chunks)),
	)

	processed, err := uc.indexChunks(ctx, documentID, filename, req.UserID, chunks)
	if err != nil {
		return nil, err
	}

	doc, err := uc.docRepo.Create(ctx, entity.Document{
		ID:              documentID,
		UserID:          req.UserID,
		Filename:        filename,
		FileType:        fileType,
		TotalChunks:     len(chunks),
		ChunksProcessed: processed,
	})
	if err != nil {
		return nil, fmt.Errorf("create document record: %w", err)
	}

	ctxzap.Info(ctx, "document ingested",
		zap.String("document_id", doc.ID),
		zap.Int("chunks_processed", doc.ChunksProcessed),
		zap.Int("total_chunks", doc.TotalChunks),
	)

	return &entity.UploadDocumentResult{
		DocumentID:      doc.ID,
		Filename:        doc.Filename,
		ChunksProcessed: doc.ChunksProcessed,
		TotalChunks:     doc.TotalChunks,
	}, nil
}

// indexChunks embeds and upserts chunks sequentially, skipping blank chunks
// and any chunk whose embedding or upsert fails. Only a cancelled context
// stops the batch, leaving the returned count at the committed subset.
func (uc *IngestUsecase) indexChunks(
	ctx context.Context,
	documentID, filename, userID string,
	chunks []string,
) (int, error) {
	processed := 0
	for i, text := range chunks {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		vector, err := uc.embedder.EmbedDocument(ctx, text)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return processed, err
			}
			ctxzap.Warn(ctx, "chunk embedding failed, skipping",
				zap.String("document_id", documentID),
				zap.Int("chunk_index", i),
				zap.Error(err),
			)
			continue
		}

		chunk := &entity.Chunk{
			DocumentID: documentID,
			Filename:   filename,
			Index:      i,
			ChunkCount: len(chunks),
			UserID:     userID,
			Text:       text,
			Embedding:  vector,
		}

		if err := uc.index.Upsert(ctx, chunk); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return processed, err
			}
			ctxzap.Warn(ctx, "chunk upsert failed, skipping",
				zap.String("document_id", documentID),
				zap.Int("chunk_index", i),
				zap.Error(err),
			)
			continue
		}

		processed++
	}

	return processed, nil
}

// ListDocuments returns the caller's documents, newest first.
func (uc *IngestUsecase) ListDocuments(ctx context.Context, userID string) (*entity.ListDocumentsResult, error) {
	docs, err := uc.docRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return &entity.ListDocumentsResult{
		Documents:      docs,
		TotalDocuments: len(docs),
	}, nil
}

// GetDocument returns one of the caller's documents.
func (uc *IngestUsecase) GetDocument(ctx context.Context, userID, documentID string) (*entity.Document, error) {
	doc, err := uc.docRepo.Get(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument purges the document's chunks from the vector index and then
// deletes the relational record. Index deletion is best-effort: an
// unreachable index must not block the delete, at the cost of stale vectors
// that can still surface in unscoped searches until a re-run cleans them up.
func (uc *IngestUsecase) DeleteDocument(ctx context.Context, userID, documentID string) error {
	if _, err := uc.docRepo.Get(ctx, userID, documentID); err != nil {
		return err
	}

	if err := uc.index.DeleteByDocument(ctx, userID, documentID); err != nil {
		ctxzap.Warn(ctx, "could not delete chunks from vector index, continuing",
			zap.String("document_id", documentID),
			zap.Error(err),
		)
	}

	if err := uc.docRepo.Delete(ctx, userID, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	ctxzap.Info(ctx, "document deleted", zap.String("document_id", documentID))
	return nil
}
