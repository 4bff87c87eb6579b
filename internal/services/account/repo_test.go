package account

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
	"github.com/magabrotheeeer/trading-bot-backend/internal/storage/repository"
)

// memRepo — хранилище в памяти с той же семантикой UpdateAccount:
// ошибка mutate не меняет запись.
type memRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]models.Account
	writes   int
}

func newMemRepo() *memRepo {
	return &memRepo{accounts: map[int64]models.Account{}}
}

func (r *memRepo) CreateAccount(_ context.Context, na models.NewAccount) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(na.Email)
	for _, a := range r.accounts {
		if a.Email == email {
			return nil, fmt.Errorf("storage.CreateAccount: %w", repository.ErrEmailTaken)
		}
	}
	r.nextID++
	a := models.Account{
		ID: r.nextID, Name: na.Name, Email: email, PasswordHash: na.PasswordHash,
		IsSuperuser: na.IsSuperuser, CreatedAt: na.CreatedAt,
	}
	r.accounts[a.ID] = a
	return &a, nil
}

func (r *memRepo) GetAccountByID(_ context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("storage.GetAccountByID: %w", repository.ErrNotFound)
	}
	return &a, nil
}

func (r *memRepo) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == strings.ToLower(email) {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("storage.GetAccountByEmail: %w", repository.ErrNotFound)
}

func (r *memRepo) ListAccounts(_ context.Context, limit, offset int) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*models.Account
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		a := r.accounts[id]
		out = append(out, &a)
	}
	return out, nil
}

func (r *memRepo) UpdateAccount(_ context.Context, id int64, mutate func(*models.Account) error) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("storage.UpdateAccount: %w", repository.ErrNotFound)
	}
	if err := mutate(&a); err != nil {
		return nil, fmt.Errorf("storage.UpdateAccount: %w", err)
	}
	r.accounts[id] = a
	r.writes++
	return &a, nil
}

func (r *memRepo) put(a models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		r.nextID++
		a.ID = r.nextID
	}
	r.accounts[a.ID] = a
}

func (r *memRepo) get(id int64) models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id]
}

// RepoMock — мок Repository для проверки ошибок хранилища.
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateAccount(ctx context.Context, na models.NewAccount) (*models.Account, error) {
	args := m.Called(ctx, na)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *RepoMock) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *RepoMock) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *RepoMock) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *RepoMock) UpdateAccount(ctx context.Context, id int64, mutate func(*models.Account) error) (*models.Account, error) {
	args := m.Called(ctx, id, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
