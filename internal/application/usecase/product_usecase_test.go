package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/memory"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newProductUC(policy usecase.ProductPolicy) (*memory.Store, *usecase.ProductUseCase) {
	s := memory.NewStore()
	return s, usecase.NewProductUseCase(s.Products(), memory.NewTxRunner(s), policy)
}

func TestProductUseCase_CreateAceptaStringsNumericos(t *testing.T) {
	var in dto.CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Mouse","quantity":"12","price":"9.99","category":"perifericos"}`), &in))

	_, uc := newProductUC(usecase.ProductPolicy{})
	p, err := uc.Create(context.Background(), "admin-1", in)
	require.NoError(t, err)

	assert.Equal(t, 12, p.Quantity)
	assert.Equal(t, "9.99", p.Price.StringFixed(2))
	assert.Equal(t, entity.DefaultReorderLevel, p.ReorderLevel)
	assert.Equal(t, "admin-1", p.UserID)
}

func TestProductUseCase_CreateValidaCampos(t *testing.T) {
	_, uc := newProductUC(usecase.ProductPolicy{})
	cases := []dto.CreateProductRequest{
		{Name: "", Quantity: dec("1"), Price: dec("1"), Category: "c"},
		{Name: "x", Quantity: dec("1"), Price: dec("1"), Category: " "},
		{Name: "x", Quantity: dec("-1"), Price: dec("1"), Category: "c"},
		{Name: "x", Quantity: dec("1.5"), Price: dec("1"), Category: "c"},
		{Name: "x", Quantity: dec("1"), Price: dec("-0.01"), Category: "c"},
		{Name: "x", Price: dec("1"), Category: "c"},
		{Name: "x", Quantity: dec("1"), Price: dec("1e11"), Category: "c"},
		{Name: "x", Quantity: dec("1"), Price: dec("9999999999.996"), Category: "c"},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), "admin-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProductUseCase_PrecioMaximoRepresentable(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC(usecase.ProductPolicy{})
	p, err := uc.Create(ctx, "admin-1", dto.CreateProductRequest{Name: "Servidor", Quantity: dec("1"), Price: dec("9999999999.99"), Category: "c"})
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(entity.MaxAmount))

	_, err = uc.Update(ctx, "admin-1", p.ID, dto.UpdateProductRequest{Price: dec("10000000000")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC(usecase.ProductPolicy{})
	p, err := uc.Create(ctx, "admin-1", dto.CreateProductRequest{Name: "Mouse", Quantity: dec("3"), Price: dec("5"), Category: "c"})
	require.NoError(t, err)

	name := "Mouse inalámbrico"
	up, err := uc.Update(ctx, "admin-1", p.ID, dto.UpdateProductRequest{Name: &name, Quantity: dec("8")})
	require.NoError(t, err)
	assert.Equal(t, name, up.Name)
	assert.Equal(t, 8, up.Quantity)
	assert.True(t, up.Price.Equal(decimal.NewFromInt(5)))

	_, err = uc.Update(ctx, "admin-1", "nope", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUseCase_DeleteYNotFound(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC(usecase.ProductPolicy{})
	p, err := uc.Create(ctx, "admin-1", dto.CreateProductRequest{Name: "Mouse", Quantity: dec("3"), Price: dec("5"), Category: "c"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "admin-1", p.ID))
	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "admin-1", p.ID), domain.ErrProductNotFound)
}

func TestProductUseCase_LowStock(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC(usecase.ProductPolicy{})
	_, err := uc.Create(ctx, "a", dto.CreateProductRequest{Name: "Bajo", Quantity: dec("5"), Price: dec("1"), Category: "c"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "a", dto.CreateProductRequest{Name: "Alto", Quantity: dec("6"), Price: dec("1"), Category: "c"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "a", dto.CreateProductRequest{Name: "Umbral propio", Quantity: dec("9"), Price: dec("1"), Category: "c", ReorderLevel: dec("10")})
	require.NoError(t, err)

	low, err := uc.ListLowStock(ctx, "a")
	require.NoError(t, err)
	names := []string{}
	for _, p := range low {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Bajo", "Umbral propio"}, names)
}

func TestProductUseCase_ListPaginado(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC(usecase.ProductPolicy{})
	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, "a", dto.CreateProductRequest{Name: "P", Quantity: dec("1"), Price: dec("1"), Category: "c"})
		require.NoError(t, err)
	}

	page, err := uc.List(ctx, "a", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = uc.List(ctx, "a", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, err = uc.List(ctx, "a", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page, 3, "sin limit se aplica el valor por defecto")
}

func TestProductUseCase_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC(usecase.ProductPolicy{OwnerScoped: true})
	mine, err := uc.Create(ctx, "a", dto.CreateProductRequest{Name: "Mío", Quantity: dec("1"), Price: dec("1"), Category: "c"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "b", dto.CreateProductRequest{Name: "Ajeno", Quantity: dec("1"), Price: dec("1"), Category: "c"})
	require.NoError(t, err)

	page, err := uc.List(ctx, "a", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Mío", page[0].Name)

	assert.ErrorIs(t, uc.Delete(ctx, "b", mine.ID), domain.ErrProductNotFound)
	assert.NoError(t, uc.Delete(ctx, "a", mine.ID))
}

func TestProductUseCase_LedgerRegistraHistorial(t *testing.T) {
	ctx := context.Background()
	s, uc := newProductUC(usecase.ProductPolicy{Ledger: true})
	p, err := uc.Create(ctx, "a", dto.CreateProductRequest{Name: "P", Quantity: dec("4"), Price: dec("1"), Category: "c"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, "a", p.ID, dto.UpdateProductRequest{Quantity: dec("9")})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, "a", p.ID))

	hist, err := s.StockHistory().List(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	// más reciente primero
	assert.Equal(t, entity.StockDelete, hist[0].TransactionType)
	assert.Equal(t, 9, hist[0].OldQuantity)
	assert.Equal(t, 0, hist[0].NewQuantity)
	assert.Equal(t, entity.StockUpdate, hist[1].TransactionType)
	assert.Equal(t, entity.StockAdd, hist[2].TransactionType)
	assert.Equal(t, 4, hist[2].NewQuantity)
}

func TestProductUseCase_SinLedgerNoHayHistorial(t *testing.T) {
	ctx := context.Background()
	s, uc := newProductUC(usecase.ProductPolicy{})
	_, err := uc.Create(ctx, "a", dto.CreateProductRequest{Name: "P", Quantity: dec("4"), Price: dec("1"), Category: "c"})
	require.NoError(t, err)

	hist, err := s.StockHistory().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, hist)
}
