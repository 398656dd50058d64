package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/userfeed/userfeed/internal/adapter/backend"
	domain "github.com/userfeed/userfeed/internal/domain/user"
	"github.com/userfeed/userfeed/pkg/errors"
)

// MockBackend is a mock implementation of the backend.Backend interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) FetchSerializedCollection(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// setupSeededRepository builds a repository over the default seed with a
// sleeper that counts suspensions instead of sleeping.
func setupSeededRepository(t *testing.T, opts ...backend.Option) (*UserRepository, *int) {
	t.Helper()

	sleeps := 0
	opts = append(opts, backend.WithSleeper(func(time.Duration) { sleeps++ }))

	b, err := backend.NewMemoryBackend(zaptest.NewLogger(t), opts...)
	require.NoError(t, err)

	return NewUserRepository(b, zaptest.NewLogger(t)), &sleeps
}

// ==================== FETCH ALL TESTS ====================

func TestFetchAll_SeedOrderPreserved(t *testing.T) {
	repo, _ := setupSeededRepository(t)

	users, err := repo.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, domain.User{ID: 1, Name: "Alice", Email: "alice@mail.com"}, users[0])
	assert.Equal(t, domain.User{ID: 2, Name: "Bob", Email: "bob@mail.com"}, users[1])
	assert.Equal(t, domain.User{ID: 3, Name: "Charlie", Email: "charlie@mail.com"}, users[2])
}

func TestFetchAll_NoCaching_EachCallIncursDelay(t *testing.T) {
	repo, sleeps := setupSeededRepository(t)
	ctx := context.Background()

	first, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	second, err := repo.FetchAll(ctx)
	require.NoError(t, err)

	// Two consecutive calls each independently hit the backend.
	assert.Equal(t, 2, *sleeps)
	assert.Equal(t, first, second)
}

func TestFetchAll_BackendError_WrappedAsFetchError(t *testing.T) {
	mockBackend := new(MockBackend)
	repo := NewUserRepository(mockBackend, zaptest.NewLogger(t))
	ctx := context.Background()

	cause := assert.AnError
	mockBackend.On("FetchSerializedCollection", ctx).Return(nil, cause)

	users, err := repo.FetchAll(ctx)

	assert.Nil(t, users)

	var fetchErr *errors.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, cause)

	mockBackend.AssertExpectations(t)
}

func TestFetchAll_InvalidCollection_WrappedAsFetchError(t *testing.T) {
	mockBackend := new(MockBackend)
	repo := NewUserRepository(mockBackend, zaptest.NewLogger(t))
	ctx := context.Background()

	mockBackend.On("FetchSerializedCollection", ctx).Return([]byte(`{not an array`), nil)

	_, err := repo.FetchAll(ctx)

	var fetchErr *errors.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetchAll_MalformedRecord_WrappedAsFetchError(t *testing.T) {
	repo, _ := setupSeededRepository(t, backend.WithSeed(
		json.RawMessage(`{"id":1,"name":"Alice","email":"alice@mail.com"}`),
		json.RawMessage(`{"id":2,"name":"Bob"}`),
	))

	users, err := repo.FetchAll(context.Background())

	assert.Nil(t, users)

	// The fetch failure carries the deserialization cause.
	var fetchErr *errors.FetchError
	require.ErrorAs(t, err, &fetchErr)

	var malformed *errors.MalformedRecordError
	assert.ErrorAs(t, err, &malformed)
}

// ==================== FETCH BY ID TESTS ====================

func TestFetchByID_Found(t *testing.T) {
	repo, _ := setupSeededRepository(t)

	u, err := repo.FetchByID(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 2, Name: "Bob", Email: "bob@mail.com"}, u)
}

func TestFetchByID_AllSeedIDsResolve(t *testing.T) {
	repo, _ := setupSeededRepository(t)

	for _, id := range []int64{1, 2, 3} {
		u, err := repo.FetchByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
	}
}

func TestFetchByID_AbsentID_NotFound(t *testing.T) {
	repo, _ := setupSeededRepository(t)

	_, err := repo.FetchByID(context.Background(), 999)

	var notFound *errors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(999), notFound.ID)

	// Not-found is distinct from a transport/deserialization failure.
	var fetchErr *errors.FetchError
	assert.NotErrorAs(t, err, &fetchErr)
}

func TestFetchByID_BackendError_FetchErrorNotNotFound(t *testing.T) {
	mockBackend := new(MockBackend)
	repo := NewUserRepository(mockBackend, zaptest.NewLogger(t))
	ctx := context.Background()

	mockBackend.On("FetchSerializedCollection", ctx).Return(nil, assert.AnError)

	_, err := repo.FetchByID(ctx, 1)

	var fetchErr *errors.FetchError
	require.ErrorAs(t, err, &fetchErr)

	var notFound *errors.NotFoundError
	assert.NotErrorAs(t, err, &notFound)
}

func TestFetchByID_EachCallRefetches(t *testing.T) {
	repo, sleeps := setupSeededRepository(t)
	ctx := context.Background()

	_, err := repo.FetchByID(ctx, 1)
	require.NoError(t, err)
	_, err = repo.FetchByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, *sleeps)
}
