package brokerage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) ListBrokerages(ctx context.Context, limit, offset int) ([]*models.Brokerage, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Brokerage), args.Error(1)
}

func (m *RepoMock) GetBrokerage(ctx context.Context, id int64) (*models.Brokerage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brokerage), args.Error(1)
}

func (m *RepoMock) CreateBrokerage(ctx context.Context, b models.Brokerage) (*models.Brokerage, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brokerage), args.Error(1)
}

func (m *RepoMock) UpdateBrokerage(ctx context.Context, id int64, mutate func(*models.Brokerage) error) (*models.Brokerage, error) {
	args := m.Called(ctx, id, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	b := args.Get(0).(*models.Brokerage)
	if err := mutate(b); err != nil {
		return nil, err
	}
	return b, args.Error(1)
}

func (m *RepoMock) GetUserBrokerage(ctx context.Context, userID, brokerageID int64) (*models.UserBrokerage, error) {
	args := m.Called(ctx, userID, brokerageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBrokerage), args.Error(1)
}

func (m *RepoMock) CreateUserBrokerage(ctx context.Context, ub models.UserBrokerage) (*models.UserBrokerage, error) {
	args := m.Called(ctx, ub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBrokerage), args.Error(1)
}

func (m *RepoMock) UpdateUserBrokerage(ctx context.Context, userID, brokerageID int64, mutate func(*models.UserBrokerage) error) (*models.UserBrokerage, error) {
	args := m.Called(ctx, userID, brokerageID, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	ub := args.Get(0).(*models.UserBrokerage)
	if err := mutate(ub); err != nil {
		return nil, err
	}
	return ub, args.Error(1)
}

func newService(repo Repository) *Service {
	return New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ptr[T any](v T) *T { return &v }

func TestService_CreateConnection(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *RepoMock)
		wantErr error
	}{
		{
			name: "password stored obfuscated",
			setup: func(m *RepoMock) {
				m.On("GetBrokerage", mock.Anything, int64(2)).Return(&models.Brokerage{ID: 2}, nil)
				m.On("CreateUserBrokerage", mock.Anything, mock.MatchedBy(func(ub models.UserBrokerage) bool {
					return ub.UserID == 1 && ub.BrokerageID == 2 && ub.Password != nil && *ub.Password == "czNjcmV0"
				})).Return(&models.UserBrokerage{ID: 10, UserID: 1, BrokerageID: 2}, nil)
			},
		},
		{
			name: "unknown brokerage",
			setup: func(m *RepoMock) {
				m.On("GetBrokerage", mock.Anything, int64(2)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "already connected",
			setup: func(m *RepoMock) {
				m.On("GetBrokerage", mock.Anything, int64(2)).Return(&models.Brokerage{ID: 2}, nil)
				m.On("CreateUserBrokerage", mock.Anything, mock.Anything).Return(nil, repository.ErrAlreadyExists)
			},
			wantErr: ErrAlreadyConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setup(repo)

			got, err := newService(repo).CreateConnection(context.Background(), 1, 2,
				models.UserBrokeragePatch{Username: ptr("trader"), Password: ptr("s3cret")})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(10), got.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_UpdateConnection(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpdateUserBrokerage", mock.Anything, int64(1), int64(2), mock.Anything).
		Return(&models.UserBrokerage{ID: 10, UserID: 1, BrokerageID: 2, Username: ptr("old")}, nil)

	got, err := newService(repo).UpdateConnection(context.Background(), 1, 2, models.UserBrokeragePatch{Password: ptr("s3cret")})
	require.NoError(t, err)
	assert.Equal(t, "old", *got.Username)
	assert.Equal(t, "czNjcmV0", *got.Password)
}

func TestService_CatalogNotFound(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetBrokerage", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound)
	repo.On("UpdateBrokerage", mock.Anything, int64(7), mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("GetUserBrokerage", mock.Anything, int64(1), int64(7)).Return(nil, repository.ErrNotFound)
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, 7, models.BrokeragePatch{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetConnection(ctx, 1, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CreateAndList(t *testing.T) {
	repo := new(RepoMock)
	b := models.Brokerage{Name: "iqoption", Route: "/iq", Icon: "iq.png"}
	repo.On("CreateBrokerage", mock.Anything, b).Return(&models.Brokerage{ID: 1, Name: "iqoption"}, nil)
	repo.On("ListBrokerages", mock.Anything, 100, 0).Return([]*models.Brokerage{{ID: 1}}, nil)
	svc := newService(repo)

	created, err := svc.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	list, err := svc.List(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
