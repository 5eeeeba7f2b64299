package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// StockHistoryView entrada del historial con nombre de producto y usuario.
type StockHistoryView struct {
	entity.StockHistory
	ProductName string
	Username    string
}

// StockHistoryRepository puerto append-only del historial de stock.
type StockHistoryRepository interface {
	Append(ctx context.Context, entry *entity.StockHistory) error
	// List devuelve todo el historial, más reciente primero.
	List(ctx context.Context) ([]StockHistoryView, error)
}
