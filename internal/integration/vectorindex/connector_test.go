package vectorindex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartdoc/docqa-backend/internal/config"
	"github.com/smartdoc/docqa-backend/internal/entity"
	pkgretry "github.com/smartdoc/docqa-backend/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string) config.VectorIndexConfig {
	return config.VectorIndexConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           5 * time.Second,
			KeepAlive:             30 * time.Second,
			IdleConnTimeout:       30 * time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Url:                   url,
		},
		Collection: "documents",
		Dimension:  4,
		TopK:       5,
		Bootstrap: pkgretry.RetryConfig{
			Attempts: 1,
			Delay:    time.Millisecond,
			MaxDelay: time.Millisecond,
		},
	}
}

type capturedRequest struct {
	method string
	path   string
	query  string
	body   map[string]any
}

func capture(t *testing.T, status int, respBody string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, &captured.body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(respBody))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestUpsert_WritesDeterministicPointID(t *testing.T) {
	server, captured := capture(t, http.StatusOK, `{"status":"ok"}`)
	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	chunk := &entity.Chunk{
		DocumentID: "doc-a",
		Filename:   "a.txt",
		Index:      2,
		ChunkCount: 3,
		UserID:     "user-1",
		Text:       "some passage",
		Embedding:  []float32{0.1, 0.2, 0.3, 0.4},
	}
	require.NoError(t, conn.Upsert(context.Background(), chunk))

	assert.Equal(t, http.MethodPut, captured.method)
	assert.Equal(t, "/collections/documents/points", captured.path)
	assert.Equal(t, "wait=true", captured.query)

	points := captured.body["points"].([]any)
	require.Len(t, points, 1)
	point := points[0].(map[string]any)

	// The point id must be a UUID (the only string form the index accepts)
	// derived deterministically from the logical chunk id.
	id, ok := point["id"].(string)
	require.True(t, ok)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.NewSHA1(pointNamespace, []byte("doc-a_chunk_2")), parsed)

	payload := point["payload"].(map[string]any)
	assert.Equal(t, "doc-a", payload["document_id"])
	assert.Equal(t, "user-1", payload["user_id"])
	assert.Equal(t, float64(2), payload["chunk_index"])
	assert.Equal(t, float64(3), payload["chunk_count"])
	assert.Equal(t, "some passage", payload["text"])
}

func TestSearch_SendsFilterAndParsesHits(t *testing.T) {
	server, captured := capture(t, http.StatusOK, `{
		"result": [
			{"score": 0.92, "payload": {"document_id": "doc-a", "filename": "a.txt", "chunk_index": 0, "text": "first"}},
			{"score": 0.81, "payload": {"document_id": "doc-a", "filename": "a.txt", "chunk_index": 4, "text": "second"}}
		]
	}`)
	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	passages, err := conn.Search(context.Background(), []float32{1, 0, 0, 0}, "user-1", []string{"doc-a"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/collections/documents/points/search", captured.path)
	assert.Equal(t, float64(5), captured.body["limit"])
	assert.Equal(t, true, captured.body["with_payload"])

	filterBody, err := json.Marshal(captured.body["filter"])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"must": [
			{"key": "user_id", "match": {"value": "user-1"}},
			{"key": "document_id", "match": {"any": ["doc-a"]}}
		]
	}`, string(filterBody))

	require.Len(t, passages, 2)
	assert.Equal(t, "first", passages[0].Text)
	assert.Equal(t, 0, passages[0].ChunkIndex)
	assert.InDelta(t, 0.92, passages[0].Score, 1e-6)
	assert.Equal(t, "second", passages[1].Text)
	assert.Equal(t, 4, passages[1].ChunkIndex)
}

func TestDeleteByDocument_FilterDelete(t *testing.T) {
	server, captured := capture(t, http.StatusOK, `{"status":"ok"}`)
	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	require.NoError(t, conn.DeleteByDocument(context.Background(), "user-1", "doc-a"))

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/collections/documents/points/delete", captured.path)

	filterBody, err := json.Marshal(captured.body["filter"])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"must": [
			{"key": "user_id", "match": {"value": "user-1"}},
			{"key": "document_id", "match": {"any": ["doc-a"]}}
		]
	}`, string(filterBody))
}

func TestDeleteByDocument_UnreachableIndexSignalsIndexUnavailable(t *testing.T) {
	server, _ := capture(t, http.StatusOK, `{}`)
	cfg := testConfig(server.URL)
	server.Close()
	conn := NewConnector(cfg, zap.NewNop())

	err := conn.DeleteByDocument(context.Background(), "user-1", "doc-a")
	assert.ErrorIs(t, err, entity.ErrIndexUnavailable)
}

func TestConnector_SendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":[]}`))
	}))
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	cfg.Token = "secret-key"
	conn := NewConnector(cfg, zap.NewNop())

	_, err := conn.Search(context.Background(), []float32{1, 0, 0, 0}, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
}

func TestPointID_StableAndDistinct(t *testing.T) {
	a := &entity.Chunk{DocumentID: "doc-a", Index: 0}
	b := &entity.Chunk{DocumentID: "doc-a", Index: 1}

	assert.Equal(t, pointID(a), pointID(a))
	assert.NotEqual(t, pointID(a), pointID(b))

	_, err := uuid.Parse(pointID(a))
	assert.NoError(t, err)
}

func TestEnsureCollection_SkipsCreateWhenCollectionExists(t *testing.T) {
	var puts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/documents", r.URL.Path)
		if r.Method == http.MethodPut {
			puts++
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"status":"green"}}`))
	}))
	t.Cleanup(server.Close)

	conn := NewConnector(testConfig(server.URL), zap.NewNop())
	require.NoError(t, conn.EnsureCollection(context.Background()))
	assert.Zero(t, puts)
}

func TestEnsureCollection_CreatesMissingCollection(t *testing.T) {
	var createBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/documents", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status":{"error":"Collection documents doesn't exist"}}`))
		case http.MethodPut:
			data, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(data, &createBody))
			w.Write([]byte(`{"result":true}`))
		}
	}))
	t.Cleanup(server.Close)

	conn := NewConnector(testConfig(server.URL), zap.NewNop())
	require.NoError(t, conn.EnsureCollection(context.Background()))

	require.NotNil(t, createBody)
	vectors := createBody["vectors"].(map[string]any)
	assert.Equal(t, float64(4), vectors["size"])
	assert.Equal(t, "Cosine", vectors["distance"])
}

func TestEnsureCollection_ConflictOnCreateIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"status":{"error":"Collection documents already exists"}}`))
		}
	}))
	t.Cleanup(server.Close)

	conn := NewConnector(testConfig(server.URL), zap.NewNop())
	assert.NoError(t, conn.EnsureCollection(context.Background()))
}

func TestEnsureCollection_LookupErrorSurfaces(t *testing.T) {
	server, _ := capture(t, http.StatusInternalServerError, `{"status":"error"}`)
	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	assert.Error(t, conn.EnsureCollection(context.Background()))
}

func TestSearch_ServerErrorSurfaces(t *testing.T) {
	server, _ := capture(t, http.StatusInternalServerError, `{"status":"error"}`)
	conn := NewConnector(testConfig(server.URL), zap.NewNop())

	_, err := conn.Search(context.Background(), []float32{1, 0, 0, 0}, "user-1", nil)
	assert.Error(t, err)
}
