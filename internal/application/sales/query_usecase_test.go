package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
)

func TestQueryUseCase_Filtros(t *testing.T) {
	ctx := context.Background()
	s, uc := newSalesFixture(t, 10, "3")
	_, err := uc.RecordSale(ctx, sales.SaleInputDTO{UserID: "u1", ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	_, err = uc.RecordSale(ctx, sales.SaleInputDTO{UserID: "u1", ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	q := sales.NewQueryUseCase(s.Sales())

	all, err := q.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].Quantity, "más recientes primero")
	assert.Equal(t, "Teclado", all[0].ProductName)
	assert.Equal(t, "caja", all[0].Username)

	byProduct, err := q.ListSalesByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)

	byUser, err := q.ListSalesByUser(ctx, "otro")
	require.NoError(t, err)
	assert.Empty(t, byUser)

	_, err = q.ListSalesByUser(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
