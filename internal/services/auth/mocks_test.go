package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

// AccountFinderMock — мок AccountFinder.
type AccountFinderMock struct {
	mock.Mock
}

func (m *AccountFinderMock) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// LifecycleMock — мок Lifecycle.
type LifecycleMock struct {
	mock.Mock
}

func (m *LifecycleMock) CheckAndEnforceExpiry(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LifecycleMock) RecordLogin(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// memAccounts — хранилище учётных записей в памяти для сквозного сценария.
type memAccounts struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]models.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: map[int64]models.Account{}}
}

func (r *memAccounts) CreateAccount(_ context.Context, na models.NewAccount) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a := models.Account{ID: r.nextID, Name: na.Name, Email: strings.ToLower(na.Email),
		PasswordHash: na.PasswordHash, IsSuperuser: na.IsSuperuser, CreatedAt: na.CreatedAt}
	r.accounts[a.ID] = a
	return &a, nil
}

func (r *memAccounts) GetAccountByID(_ context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *memAccounts) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == strings.ToLower(email) {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("storage.GetAccountByEmail: %w", repository.ErrNotFound)
}

func (r *memAccounts) ListAccounts(context.Context, int, int) ([]*models.Account, error) {
	return nil, nil
}

func (r *memAccounts) UpdateAccount(_ context.Context, id int64, mutate func(*models.Account) error) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := mutate(&a); err != nil {
		return nil, err
	}
	r.accounts[id] = a
	return &a, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
