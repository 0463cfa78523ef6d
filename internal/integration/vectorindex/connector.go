package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/smartdoc/docqa-backend/internal/config"
	"github.com/smartdoc/docqa-backend/internal/entity"
	"github.com/smartdoc/docqa-backend/internal/integration/common"
	pkghttp "github.com/smartdoc/docqa-backend/pkg/http"
	"go.uber.org/zap"
)

// Connector talks to a Qdrant collection over its REST API. All per-request
// operations are single-attempt; only the startup collection bootstrap is
// retried, since a cold index container racing the service is routine.
type Connector struct {
	config    config.VectorIndexConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.VectorIndexConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// pointNamespace seeds the UUIDv5 derivation of point ids. Qdrant only
// accepts unsigned integers or UUIDs as point ids, so the logical chunk id
// cannot be used directly.
var pointNamespace = uuid.MustParse("4a3f0dc1-92c4-5f4e-8b6a-1d2e9f7c5a10")

// pointID maps a chunk's logical id onto a deterministic UUID. The same
// chunk always derives the same UUID, which preserves overwrite on
// re-ingestion; the logical id stays recoverable from the payload's
// document_id and chunk_index.
func pointID(chunk *entity.Chunk) string {
	return uuid.NewSHA1(pointNamespace, []byte(chunk.VectorID())).String()
}

type upsertRequest struct {
	Points []point `json:"points"`
}

type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Filter      filter    `json:"filter"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type searchResponse struct {
	Result []struct {
		Score   float32        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
}

type deleteRequest struct {
	Filter filter `json:"filter"`
}

func isStatus(err error, status int) bool {
	var httpErr *pkghttp.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == status
}

// EnsureCollection creates the cosine collection if it does not exist yet.
// Qdrant answers 404 on lookup of a missing collection and 409 when a
// concurrent create won the race; both paths leave the collection in place.
func (c *Connector) EnsureCollection(ctx context.Context) error {
	endpoint := fmt.Sprintf("/collections/%s", c.config.Collection)

	err := retry.Do(func() error {
		lookupErr := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, nil)
		if lookupErr == nil {
			return nil
		}
		if !isStatus(lookupErr, http.StatusNotFound) {
			return lookupErr
		}

		body := map[string]any{
			"vectors": map[string]any{
				"size":     c.config.Dimension,
				"distance": "Cosine",
			},
		}
		createErr := c.connector.DoRequest(ctx, http.MethodPut, endpoint, body, nil)
		if createErr != nil && !isStatus(createErr, http.StatusConflict) {
			return createErr
		}
		return nil
	}, append(c.config.Bootstrap.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return fmt.Errorf("ensure collection %s: %w", c.config.Collection, err)
	}

	c.logger.Info("vector collection ready",
		zap.String("collection", c.config.Collection),
		zap.Int("dimension", c.config.Dimension),
	)
	return nil
}

// Upsert writes one chunk under its deterministic point id. Re-ingesting a
// document id silently overwrites the chunks with the same indices, which is
// the intended idempotence behavior.
func (c *Connector) Upsert(ctx context.Context, chunk *entity.Chunk) error {
	req := upsertRequest{
		Points: []point{{
			ID:     pointID(chunk),
			Vector: chunk.Embedding,
			Payload: map[string]any{
				"document_id": chunk.DocumentID,
				"filename":    chunk.Filename,
				"chunk_index": chunk.Index,
				"chunk_count": chunk.ChunkCount,
				"user_id":     chunk.UserID,
				"text":        chunk.Text,
			},
		}},
	}

	endpoint := fmt.Sprintf("/collections/%s/points?wait=true", c.config.Collection)
	if err := c.connector.DoRequest(ctx, http.MethodPut, endpoint, req, nil); err != nil {
		return fmt.Errorf("upsert chunk %s: %w", chunk.VectorID(), err)
	}

	return nil
}

// Search runs a cosine top-k query constrained to the user's id and, when
// documentIDs is non-empty, to that document id set.
func (c *Connector) Search(
	ctx context.Context,
	vector []float32,
	userID string,
	documentIDs []string,
) ([]entity.Passage, error) {
	req := searchRequest{
		Vector:      vector,
		Filter:      buildFilter(userID, documentIDs),
		Limit:       c.config.TopK,
		WithPayload: true,
	}

	var resp searchResponse
	endpoint := fmt.Sprintf("/collections/%s/points/search", c.config.Collection)
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("search collection: %w", err)
	}

	passages := make([]entity.Passage, 0, len(resp.Result))
	for _, hit := range resp.Result {
		p := entity.Passage{Score: hit.Score}
		if v, ok := hit.Payload["document_id"].(string); ok {
			p.DocumentID = v
		}
		if v, ok := hit.Payload["filename"].(string); ok {
			p.Filename = v
		}
		if v, ok := hit.Payload["chunk_index"].(float64); ok {
			p.ChunkIndex = int(v)
		}
		if v, ok := hit.Payload["text"].(string); ok {
			p.Text = v
		}
		passages = append(passages, p)
	}

	ctxzap.Debug(ctx, "vector search finished", zap.Int("hits", len(passages)))

	return passages, nil
}

// DeleteByDocument purges every chunk of one document, always conjoined with
// the owning user's id. Failures surface as ErrIndexUnavailable so callers
// can continue with the relational deletion.
func (c *Connector) DeleteByDocument(ctx context.Context, userID, documentID string) error {
	req := deleteRequest{Filter: buildFilter(userID, []string{documentID})}

	endpoint := fmt.Sprintf("/collections/%s/points/delete?wait=true", c.config.Collection)
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, nil); err != nil {
		return fmt.Errorf("%w: delete chunks of %s: %v", entity.ErrIndexUnavailable, documentID, err)
	}

	ctxzap.Info(ctx, "document chunks deleted from index", zap.String("document_id", documentID))
	return nil
}
