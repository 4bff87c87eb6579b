package siteoption

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trading-bot-backend/internal/cache"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) ListSiteOptions(ctx context.Context, limit, offset int) ([]*models.SiteOption, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SiteOption), args.Error(1)
}

func (m *RepoMock) GetSiteOption(ctx context.Context, name string) (*models.SiteOption, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteOption), args.Error(1)
}

func (m *RepoMock) UpdateSiteOptionValue(ctx context.Context, name, value string) (*models.SiteOption, error) {
	args := m.Called(ctx, name, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteOption), args.Error(1)
}

func setup(t *testing.T) (*Service, *RepoMock, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := new(RepoMock)
	svc := New(repo, &cache.Cache{Db: client}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo, mr
}

func TestService_GetCachesResult(t *testing.T) {
	svc, repo, mr := setup(t)
	ctx := context.Background()
	repo.On("GetSiteOption", mock.Anything, "maintenance").
		Return(&models.SiteOption{ID: 1, KeyName: "maintenance", KeyValue: "false", Type: "boolean"}, nil).Once()

	first, err := svc.Get(ctx, "maintenance")
	require.NoError(t, err)
	assert.True(t, mr.Exists("siteoption:maintenance"))
	assert.Equal(t, cacheTTL, mr.TTL("siteoption:maintenance"))

	second, err := svc.Get(ctx, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "GetSiteOption", 1)
}

func TestService_UpdateInvalidatesCache(t *testing.T) {
	svc, repo, mr := setup(t)
	ctx := context.Background()
	repo.On("GetSiteOption", mock.Anything, "maintenance").
		Return(&models.SiteOption{KeyName: "maintenance", KeyValue: "false"}, nil).Once()
	repo.On("UpdateSiteOptionValue", mock.Anything, "maintenance", "true").
		Return(&models.SiteOption{KeyName: "maintenance", KeyValue: "true"}, nil).Once()
	repo.On("GetSiteOption", mock.Anything, "maintenance").
		Return(&models.SiteOption{KeyName: "maintenance", KeyValue: "true"}, nil).Once()

	_, err := svc.Get(ctx, "maintenance")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "maintenance", "true")
	require.NoError(t, err)
	assert.Equal(t, "true", updated.KeyValue)
	assert.False(t, mr.Exists("siteoption:maintenance"))

	got, err := svc.Get(ctx, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, "true", got.KeyValue)
	repo.AssertExpectations(t)
}

func TestService_NotFound(t *testing.T) {
	svc, repo, mr := setup(t)
	ctx := context.Background()
	repo.On("GetSiteOption", mock.Anything, "missing").Return(nil, repository.ErrNotFound)
	repo.On("UpdateSiteOptionValue", mock.Anything, "missing", "x").Return(nil, repository.ErrNotFound)

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists("siteoption:missing"))

	_, err = svc.Update(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CacheDownFallsBackToRepo(t *testing.T) {
	svc, repo, mr := setup(t)
	mr.Close()
	repo.On("GetSiteOption", mock.Anything, "maintenance").
		Return(&models.SiteOption{KeyName: "maintenance", KeyValue: "false"}, nil)

	got, err := svc.Get(context.Background(), "maintenance")
	require.NoError(t, err)
	assert.Equal(t, "false", got.KeyValue)
}

func TestService_List(t *testing.T) {
	svc, repo, _ := setup(t)
	repo.On("ListSiteOptions", mock.Anything, 100, 0).Return([]*models.SiteOption{{ID: 1}, {ID: 2}}, nil)

	got, err := svc.List(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
