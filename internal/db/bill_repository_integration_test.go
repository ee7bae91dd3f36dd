//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/models"
)

func newIntegrationDB(t *testing.T) *PostgresDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("minibill_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := NewPostgresDB(ctx, dsn, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, Migrate(database, zap.NewNop()))
	return database
}

func TestBillRepository_Postgres(t *testing.T) {
	database := newIntegrationDB(t)
	repo := NewBillRepository(database)
	ctx := context.Background()

	first := &models.Bill{BillingDate: time.Now().UTC(), CustomerID: 7}
	second := &models.Bill{BillingDate: time.Now().UTC(), CustomerID: 7}
	require.NoError(t, repo.SaveBill(ctx, first))
	require.NoError(t, repo.SaveBill(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	require.NoError(t, repo.SaveLineItem(ctx, &models.LineItem{BillID: first.ID, ProductID: 1, Quantity: 3, UnitPrice: 10}))
	require.NoError(t, repo.SaveLineItem(ctx, &models.LineItem{BillID: first.ID, ProductID: 1, Quantity: 1, UnitPrice: 10}))

	items, err := repo.FindLineItemsByBill(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.FindLineItemsByBill(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = repo.SaveLineItem(ctx, &models.LineItem{BillID: 12345, ProductID: 1, Quantity: 1})
	assert.Error(t, err, "line items cannot reference a missing bill")

	n, err := repo.CountBills(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Migrations are idempotent.
	require.NoError(t, Migrate(database, zap.NewNop()))
}

func TestDirectorySeed_Postgres(t *testing.T) {
	database := newIntegrationDB(t)
	ctx := context.Background()

	customers := NewCustomerRepository(database)
	n, err := customers.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	products := NewProductRepository(database)
	n, err = products.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = products.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
