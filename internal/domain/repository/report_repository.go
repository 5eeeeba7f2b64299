package repository

import "context"

// ReportRepository consultas de solo lectura para reportes de ventas.
type ReportRepository interface {
	// SalesSummary agrupa ventas por producto y usuario. userID vacío = todas las ventas.
	SalesSummary(ctx context.Context, userID string) ([]SalesSummaryResult, error)

	// TopSellingProducts devuelve los `limit` productos con más unidades vendidas,
	// desempate por orden de creación del producto.
	TopSellingProducts(ctx context.Context, limit int) ([]TopProductResult, error)
}
