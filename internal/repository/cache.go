package repository

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/smartdoc/docqa-backend/internal/entity"
)

const (
	documentCacheTTL     = 5 * time.Minute
	documentCacheCleanup = 10 * time.Minute
)

var _ DocumentRepository = &CachedDocumentRepository{}

// CachedDocumentRepository is a read-through cache in front of single
// document lookups. Only Get is cached; list results go stale on every
// upload in a user-visible way.
type CachedDocumentRepository struct {
	inner DocumentRepository
	cache *gocache.Cache
}

func NewCachedDocumentRepository(inner DocumentRepository) *CachedDocumentRepository {
	return &CachedDocumentRepository{
		inner: inner,
		cache: gocache.New(documentCacheTTL, documentCacheCleanup),
	}
}

func cacheKey(userID, id string) string {
	return userID + "/" + id
}

func (r *CachedDocumentRepository) Create(ctx context.Context, doc entity.Document) (*entity.Document, error) {
	saved, err := r.inner.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	r.cache.Set(cacheKey(saved.UserID, saved.ID), saved, gocache.DefaultExpiration)
	return saved, nil
}

func (r *CachedDocumentRepository) Get(ctx context.Context, userID, id string) (*entity.Document, error) {
	if cached, ok := r.cache.Get(cacheKey(userID, id)); ok {
		return cached.(*entity.Document), nil
	}

	doc, err := r.inner.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(cacheKey(userID, id), doc, gocache.DefaultExpiration)
	return doc, nil
}

func (r *CachedDocumentRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Document, error) {
	return r.inner.ListByUser(ctx, userID)
}

func (r *CachedDocumentRepository) Delete(ctx context.Context, userID, id string) error {
	if err := r.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	r.cache.Delete(cacheKey(userID, id))
	return nil
}
