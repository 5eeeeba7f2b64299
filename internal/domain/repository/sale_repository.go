package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SaleView venta con los campos de presentación del producto y del usuario (JOIN explícito).
type SaleView struct {
	entity.Sale
	ProductName string // vacío si el producto fue eliminado
	Username    string
}

// SaleFilter filtros opcionales para listar ventas.
type SaleFilter struct {
	ProductID string
	UserID    string
}

// SaleRepository define el puerto de persistencia para Sale. No hay Update ni Delete: las ventas son inmutables.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, filter SaleFilter) ([]SaleView, error)
}

// SalesSummaryResult fila agregada por (producto, usuario).
type SalesSummaryResult struct {
	ProductID         string
	ProductName       string
	UserID            string
	Username          string
	TotalQuantitySold int
	TotalRevenue      decimal.Decimal
	TotalSalesCount   int
}

// TopProductResult fila del ranking global de productos por unidades vendidas.
type TopProductResult struct {
	ProductID         string
	ProductName       string
	Price             decimal.Decimal
	TotalQuantitySold int
	TotalRevenue      decimal.Decimal
	TotalSalesCount   int
}
