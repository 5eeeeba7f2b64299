package usecase

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta mutaciones de productos en una transacción (misma firma que sales.TxRunner).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		historyRepo repository.StockHistoryRepository,
	) error) error
}
