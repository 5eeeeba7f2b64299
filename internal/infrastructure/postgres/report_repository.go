package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary agrupa por (producto, usuario): unidades, ingresos y número de ventas.
// userID vacío = todas las ventas.
func (r *ReportRepo) SalesSummary(ctx context.Context, userID string) ([]repository.SalesSummaryResult, error) {
	if userID != "" && !validID(userID) {
		return []repository.SalesSummaryResult{}, nil
	}
	const query = `
	SELECT
	    s.product_id,
	    COALESCE(p.name, '')      AS product_name,
	    s.user_id,
	    COALESCE(u.username, '')  AS username,
	    SUM(s.quantity)::BIGINT   AS total_quantity_sold,
	    SUM(s.total_price)        AS total_revenue,
	    COUNT(*)                  AS total_sales_count
	FROM sales s
	LEFT JOIN products p ON p.id = s.product_id
	LEFT JOIN users    u ON u.id = s.user_id
	WHERE ($1::uuid IS NULL OR s.user_id = $1::uuid)
	GROUP BY s.product_id, p.name, s.user_id, u.username
	ORDER BY total_revenue DESC, s.product_id, s.user_id`

	rows, err := r.q.Query(ctx, query, nullIfEmpty(userID))
	if err != nil {
		return nil, fmt.Errorf("reports.SalesSummary: %w", err)
	}
	defer rows.Close()

	results := make([]repository.SalesSummaryResult, 0)
	for rows.Next() {
		var row repository.SalesSummaryResult
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.UserID,
			&row.Username,
			&row.TotalQuantitySold,
			&row.TotalRevenue,
			&row.TotalSalesCount,
		); err != nil {
			return nil, fmt.Errorf("reports.SalesSummary scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopSellingProducts ranking global por unidades vendidas.
// Empates: primero el producto creado antes; productos eliminados al final.
func (r *ReportRepo) TopSellingProducts(ctx context.Context, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    s.product_id,
	    COALESCE(p.name, '')      AS product_name,
	    COALESCE(p.price, 0)      AS price,
	    SUM(s.quantity)::BIGINT   AS total_quantity_sold,
	    SUM(s.total_price)        AS total_revenue,
	    COUNT(*)                  AS total_sales_count
	FROM sales s
	LEFT JOIN products p ON p.id = s.product_id
	GROUP BY s.product_id, p.name, p.price, p.created_at
	ORDER BY total_quantity_sold DESC, p.created_at ASC NULLS LAST, s.product_id
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopSellingProducts: %w", err)
	}
	defer rows.Close()

	results := make([]repository.TopProductResult, 0)
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.Price,
			&row.TotalQuantitySold,
			&row.TotalRevenue,
			&row.TotalSalesCount,
		); err != nil {
			return nil, fmt.Errorf("reports.TopSellingProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
