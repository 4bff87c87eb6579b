package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/trading-bot-backend/internal/migrations"
	"github.com/magabrotheeeer/trading-bot-backend/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, filepath.Join(root, "migrations")))
	require.NoError(t, storage.CheckDatabaseReady(ctx))
	return storage
}

// TestDataFactory создаёт тестовые записи.
type TestDataFactory struct {
	storage *Storage
}

func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

func (f *TestDataFactory) CreateAccount(t *testing.T, email string) *models.Account {
	t.Helper()
	a, err := f.storage.CreateAccount(context.Background(), models.NewAccount{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return a
}

func (f *TestDataFactory) CreateBrokerage(t *testing.T, name string) *models.Brokerage {
	t.Helper()
	b, err := f.storage.CreateBrokerage(context.Background(), models.Brokerage{Name: name, Route: "/" + name, Icon: name + ".png"})
	require.NoError(t, err)
	return b
}

func (f *TestDataFactory) CreateSiteOption(t *testing.T, name, value string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO site_options (key_name, key_value, type) VALUES ($1, $2, 'string')`, name, value)
	require.NoError(t, err)
}
