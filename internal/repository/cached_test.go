package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/userfeed/userfeed/internal/adapter/cache"
	domain "github.com/userfeed/userfeed/internal/domain/user"
	"github.com/userfeed/userfeed/pkg/errors"
)

// MockUserRepository is a mock implementation of Repository[domain.User]
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FetchAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FetchByID(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func setupCachedRepository(t *testing.T) (*CachedUserRepository, *MockUserRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	logger := zaptest.NewLogger(t)
	userCache := cache.NewRedisUserCache(client, 5*time.Minute, logger)

	inner := new(MockUserRepository)
	return NewCachedUserRepository(inner, userCache, logger), inner
}

func TestCachedFetchByID_MissThenHit(t *testing.T) {
	repo, inner := setupCachedRepository(t)
	ctx := context.Background()

	bob := domain.User{ID: 2, Name: "Bob", Email: "bob@mail.com"}
	inner.On("FetchByID", ctx, int64(2)).Return(bob, nil).Once()

	// First call misses the cache and hits the inner repository.
	u, err := repo.FetchByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, bob, u)

	// Second call is served from cache; the inner repository is not
	// consulted again.
	u, err = repo.FetchByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, bob, u)

	inner.AssertNumberOfCalls(t, "FetchByID", 1)
}

func TestCachedFetchByID_InnerErrorPropagates(t *testing.T) {
	repo, inner := setupCachedRepository(t)
	ctx := context.Background()

	inner.On("FetchByID", ctx, int64(999)).Return(domain.User{}, errors.NewNotFoundError("user", 999))

	_, err := repo.FetchByID(ctx, 999)

	var notFound *errors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCachedFetchAll_AlwaysDelegates(t *testing.T) {
	repo, inner := setupCachedRepository(t)
	ctx := context.Background()

	users := []domain.User{{ID: 1, Name: "Alice", Email: "alice@mail.com"}}
	inner.On("FetchAll", ctx).Return(users, nil)

	_, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	_, err = repo.FetchAll(ctx)
	require.NoError(t, err)

	// The collection itself is never cached.
	inner.AssertNumberOfCalls(t, "FetchAll", 2)
}

func TestCachedFetchByID_NilCacheFallsThrough(t *testing.T) {
	inner := new(MockUserRepository)
	repo := NewCachedUserRepository(inner, nil, zaptest.NewLogger(t))
	ctx := context.Background()

	alice := domain.User{ID: 1, Name: "Alice", Email: "alice@mail.com"}
	inner.On("FetchByID", ctx, int64(1)).Return(alice, nil)

	u, err := repo.FetchByID(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, alice, u)
}
