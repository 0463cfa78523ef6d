package document

import (
	"context"

	"github.com/smartdoc/docqa-backend/internal/entity"
)

type IngestUsecase interface {
	UploadDocument(ctx context.Context, req *entity.UploadDocumentRequest) (*entity.UploadDocumentResult, error)
	ListDocuments(ctx context.Context, userID string) (*entity.ListDocumentsResult, error)
	GetDocument(ctx context.Context, userID, documentID string) (*entity.Document, error)
	DeleteDocument(ctx context.Context, userID, documentID string) error
}

type QueryUsecase interface {
	Ask(ctx context.Context, req *entity.AskRequest) (*entity.Answer, error)
}
