package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, s *memory.Store, id string, qty int) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, Name: "Producto " + id, Quantity: qty, Price: decimal.NewFromInt(10),
		Category: "general", ReorderLevel: entity.DefaultReorderLevel, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestTxRunner_RollbackNoPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", 10)

	boom := errors.New("boom")
	err := memory.NewTxRunner(s).Run(ctx, func(pr repository.ProductRepository, sr repository.SaleRepository, hr repository.StockHistoryRepository) error {
		_, err := pr.DecrementStock(ctx, "p1", 4)
		require.NoError(t, err)
		require.NoError(t, sr.Create(ctx, &entity.Sale{ID: "s1", ProductID: "p1", Quantity: 4}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
	sales, err := s.Sales().List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestFailOn_InyectaError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", 3)

	s.FailOn(memory.OpHistoryAppend, errors.New("disco lleno"))
	err := s.StockHistory().Append(ctx, &entity.StockHistory{ID: "h1", ProductID: "p1"})
	assert.Error(t, err)

	s.FailOn(memory.OpHistoryAppend, nil)
	assert.NoError(t, s.StockHistory().Append(ctx, &entity.StockHistory{ID: "h1", ProductID: "p1"}))
}

func TestProductRepository_DecrementStock(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", 3)

	left, err := s.Products().DecrementStock(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	_, err = s.Products().DecrementStock(ctx, "p1", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = s.Products().DecrementStock(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Username: "ana", Role: entity.RoleStaff}))
	err := s.Users().Create(ctx, &entity.User{ID: "u2", Username: "ana", Role: entity.RoleStaff})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestReportRepository_VentasDeProductoEliminado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", 5)
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "s1", ProductID: "p1", UserID: "u1", Quantity: 2, TotalPrice: decimal.NewFromInt(20)}))
	require.NoError(t, s.Products().Delete(ctx, "p1"))

	rows, err := s.Reports().SalesSummary(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].ProductName)
	assert.True(t, rows[0].TotalRevenue.Equal(decimal.NewFromInt(20)))
}
