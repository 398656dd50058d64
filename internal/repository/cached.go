package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/userfeed/userfeed/internal/adapter/cache"
	domain "github.com/userfeed/userfeed/internal/domain/user"
)

// CachedUserRepository decorates a Repository[domain.User] with read
// caching for FetchByID. The inner repository keeps its no-caching
// contract; callers opt into this wrapper explicitly.
type CachedUserRepository struct {
	inner Repository[domain.User]
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group
}

var _ Repository[domain.User] = (*CachedUserRepository)(nil)

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(inner Repository[domain.User], c cache.UserCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		inner: inner,
		cache: c,
		log:   log,
	}
}

// FetchAll delegates to the inner repository. The full collection is
// never cached, so ordering and freshness always come from the backend.
func (r *CachedUserRepository) FetchAll(ctx context.Context) ([]domain.User, error) {
	return r.inner.FetchAll(ctx)
}

// FetchByID retrieves a user by ID using the cache-aside pattern.
func (r *CachedUserRepository) FetchByID(ctx context.Context, id int64) (domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to backend", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.Int64("id", id))
			return *cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.Int64("id", id))
				return cachedUser, nil
			}
		}

		// Only one request hits the backend
		u, err := r.inner.FetchByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, &u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return &u, nil
	})

	if err != nil {
		return domain.User{}, err
	}

	return *result.(*domain.User), nil
}
