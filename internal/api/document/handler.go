package document

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/api/middleware"
	"github.com/smartdoc/docqa-backend/internal/config"
	"github.com/smartdoc/docqa-backend/internal/entity"
	"github.com/smartdoc/docqa-backend/internal/pkg/logger"
	"github.com/smartdoc/docqa-backend/internal/pkg/response"
	"github.com/smartdoc/docqa-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	ingestUC  IngestUsecase
	queryUC   QueryUsecase
	cfg       config.FileUploadConfig
	validator *validator.Validator
}

func NewHandler(
	ingestUC IngestUsecase,
	queryUC QueryUsecase,
	cfg config.FileUploadConfig,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		ingestUC:  ingestUC,
		queryUC:   queryUC,
		cfg:       cfg,
		validator: validator,
	}
}

// UploadDocument handles POST /documents/upload
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadDocument")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid form data or size too large", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ctxzap.Warn(ctx, "no file provided", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "no file provided", entity.ErrMissingField)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateUpload(header); err != nil {
		ctxzap.Warn(ctx, "upload validation failed", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read uploaded file", zap.Error(err))
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to read uploaded file", err)
		return
	}

	ctxzap.Info(ctx, "processing upload",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
	)

	result, err := h.ingestUC.UploadDocument(ctx, &entity.UploadDocumentRequest{
		UserID:   middleware.UserID(ctx),
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		ctxzap.Error(ctx, "document ingestion failed", zap.Error(err))
		h.respondError(ctx, w, statusForError(err), err.Error(), err)
		return
	}

	response.Success(w, uploadResponse{
		Message:         "Document uploaded and processed successfully",
		DocumentID:      result.DocumentID,
		Filename:        result.Filename,
		ChunksProcessed: result.ChunksProcessed,
		TotalChunks:     result.TotalChunks,
	})
}

// Ask handles POST /documents/ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "invalid request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", entity.ErrInvalidParameter)
		return
	}
	if req.Question == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "no question provided", entity.ErrMissingField)
		return
	}

	answer, err := h.queryUC.Ask(ctx, &entity.AskRequest{
		UserID:      middleware.UserID(ctx),
		Question:    req.Question,
		DocumentIDs: req.scopedDocumentIDs(),
	})
	if err != nil {
		ctxzap.Error(ctx, "ask request failed", zap.Error(err))
		h.respondError(ctx, w, statusForError(err), err.Error(), err)
		return
	}

	response.Success(w, answer)
}

// ListDocuments handles GET /documents
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListDocuments")

	result, err := h.ingestUC.ListDocuments(ctx, middleware.UserID(ctx))
	if err != nil {
		ctxzap.Error(ctx, "failed to list documents", zap.Error(err))
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to list documents", err)
		return
	}

	response.Success(w, result)
}

// GetDocument handles GET /documents/{document_id}
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetDocument")

	documentID := chi.URLParam(r, "document_id")
	doc, err := h.ingestUC.GetDocument(ctx, middleware.UserID(ctx), documentID)
	if err != nil {
		ctxzap.Warn(ctx, "failed to get document", zap.String("document_id", documentID), zap.Error(err))
		h.respondError(ctx, w, statusForError(err), err.Error(), err)
		return
	}

	response.Success(w, doc)
}

// DeleteDocument handles DELETE /documents/{document_id}
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteDocument")

	documentID := chi.URLParam(r, "document_id")
	if err := h.ingestUC.DeleteDocument(ctx, middleware.UserID(ctx), documentID); err != nil {
		ctxzap.Error(ctx, "failed to delete document", zap.String("document_id", documentID), zap.Error(err))
		h.respondError(ctx, w, statusForError(err), err.Error(), err)
		return
	}

	response.Success(w, deleteResponse{Message: "Document deleted successfully"})
}

func (h *Handler) respondError(_ context.Context, w http.ResponseWriter, status int, message string, err error) {
	response.Error(w, status, entity.ErrorCode(err), message)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrUnsupportedFileType),
		errors.Is(err, entity.ErrEmptyDocument),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
