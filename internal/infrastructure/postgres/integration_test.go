package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/pkg/config"
)

// Requiere una base de datos desechable: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE stock_history, sales, products, users`)
	require.NoError(t, err)
	return pool
}

func seed(t *testing.T, pool *pgxpool.Pool, stock int) (userID, productID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	userID, productID = uuid.New().String(), uuid.New().String()
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, &entity.User{
		ID: userID, Username: "caja-" + userID[:8], PasswordHash: "x", Role: entity.RoleStaff, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, &entity.Product{
		ID: productID, Name: "Teclado", Quantity: stock, Price: decimal.RequireFromString("12.50"),
		Category: "perifericos", ReorderLevel: 5, UserID: userID, CreatedAt: now, UpdatedAt: now,
	}))
	return userID, productID
}

func TestMigrate_Idempotente(t *testing.T) {
	pool := newTestPool(t)
	applied, err := postgres.Migrate(context.Background(), pool)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestUserRepo_Duplicado(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)
	u := &entity.User{ID: uuid.New().String(), Username: "ana", PasswordHash: "x", Role: entity.RoleAdmin}
	require.NoError(t, repo.Create(ctx, u))

	u2 := *u
	u2.ID = uuid.New().String()
	assert.ErrorIs(t, repo.Create(ctx, &u2), domain.ErrDuplicateUser)

	n, err := repo.CountByRole(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecordSale_Postgres(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	userID, productID := seed(t, pool, 10)

	uc := sales.NewRecordSaleUseCase(postgres.NewTxRunner(pool), zerolog.Nop())
	sale, err := uc.RecordSale(ctx, sales.SaleInputDTO{UserID: userID, ProductID: productID, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, "50.00", sale.TotalPrice.StringFixed(2))

	p, err := postgres.NewProductRepository(pool).GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Quantity)

	hist, err := postgres.NewStockHistoryRepository(pool).List(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, 10, hist[0].OldQuantity)
	assert.Equal(t, 6, hist[0].NewQuantity)

	_, err = uc.RecordSale(ctx, sales.SaleInputDTO{UserID: userID, ProductID: productID, Quantity: 7})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRecordSale_PostgresConcurrente(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	userID, productID := seed(t, pool, 5)
	uc := sales.NewRecordSaleUseCase(postgres.NewTxRunner(pool), zerolog.Nop())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordSale(ctx, sales.SaleInputDTO{UserID: userID, ProductID: productID, Quantity: 5})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok)

	list, err := postgres.NewSaleRepository(pool).List(ctx, repository.SaleFilter{ProductID: productID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReportRepo_ProductoEliminado(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	userID, productID := seed(t, pool, 5)
	uc := sales.NewRecordSaleUseCase(postgres.NewTxRunner(pool), zerolog.Nop())
	_, err := uc.RecordSale(ctx, sales.SaleInputDTO{UserID: userID, ProductID: productID, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, postgres.NewProductRepository(pool).Delete(ctx, productID))

	top, err := postgres.NewReportRepository(pool).TopSellingProducts(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "", top[0].ProductName)
	assert.Equal(t, 2, top[0].TotalQuantitySold)
}
