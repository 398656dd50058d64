package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/userfeed/userfeed/internal/adapter/backend"
	domain "github.com/userfeed/userfeed/internal/domain/user"
	"github.com/userfeed/userfeed/pkg/errors"
)

// UserRepository implements Repository[domain.User] against a Backend.
// It performs no caching: every call re-fetches the full collection, so
// consecutive calls each independently incur the backend's latency. That
// is a deliberate simplicity choice; callers wanting caching wrap this in
// a CachedUserRepository.
type UserRepository struct {
	backend backend.Backend
	log     *zap.Logger
}

var _ Repository[domain.User] = (*UserRepository)(nil)

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(b backend.Backend, log *zap.Logger) *UserRepository {
	return &UserRepository{backend: b, log: log}
}

// FetchAll retrieves and decodes the full user collection. Ordering
// matches the backend's record order. Any backend or decode failure is
// wrapped as a FetchError carrying the original cause.
func (r *UserRepository) FetchAll(ctx context.Context) ([]domain.User, error) {
	data, err := r.backend.FetchSerializedCollection(ctx)
	if err != nil {
		r.log.Error("backend fetch failed", zap.Error(err))
		return nil, errors.NewFetchError("failed to fetch users", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		r.log.Error("failed to decode collection", zap.Error(err))
		return nil, errors.NewFetchError("failed to decode user collection", err)
	}

	users := make([]domain.User, 0, len(records))
	for _, raw := range records {
		u, err := domain.Decode(raw)
		if err != nil {
			r.log.Error("failed to decode record", zap.Error(err))
			return nil, errors.NewFetchError("failed to decode user record", err)
		}
		users = append(users, *u)
	}

	r.log.Debug("fetched users", zap.Int("count", len(users)))
	return users, nil
}

// FetchByID retrieves the user with the given identifier. It re-uses
// FetchAll and scans for the first match. An absent identifier yields a
// NotFoundError, distinct from the FetchError an upstream failure yields.
func (r *UserRepository) FetchByID(ctx context.Context, id int64) (domain.User, error) {
	users, err := r.FetchAll(ctx)
	if err != nil {
		return domain.User{}, err
	}

	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}

	r.log.Warn("user not found", zap.Int64("id", id))
	return domain.User{}, errors.NewNotFoundError("user", id)
}
