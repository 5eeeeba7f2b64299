package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta. No hay Update ni Delete.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, product_id, user_id, quantity, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.ProductID, s.UserID, s.Quantity, s.TotalPrice, s.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) || isOutOfRange(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// List ventas con nombre de producto y usuario, más recientes primero.
// LEFT JOIN: las ventas de productos eliminados se listan con nombre vacío.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]repository.SaleView, error) {
	if (f.ProductID != "" && !validID(f.ProductID)) || (f.UserID != "" && !validID(f.UserID)) {
		return []repository.SaleView{}, nil
	}
	const query = `
	SELECT s.id, s.product_id, s.user_id, s.quantity, s.total_price, s.created_at,
	       COALESCE(p.name, '')     AS product_name,
	       COALESCE(u.username, '') AS username
	FROM sales s
	LEFT JOIN products p ON p.id = s.product_id
	LEFT JOIN users    u ON u.id = s.user_id
	WHERE ($1::uuid IS NULL OR s.product_id = $1::uuid)
	  AND ($2::uuid IS NULL OR s.user_id    = $2::uuid)
	ORDER BY s.created_at DESC, s.id`

	rows, err := r.q.Query(ctx, query, nullIfEmpty(f.ProductID), nullIfEmpty(f.UserID))
	if err != nil {
		return nil, fmt.Errorf("sales.List: %w", err)
	}
	defer rows.Close()

	out := make([]repository.SaleView, 0)
	for rows.Next() {
		var v repository.SaleView
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.UserID, &v.Quantity, &v.TotalPrice, &v.CreatedAt,
			&v.ProductName, &v.Username,
		); err != nil {
			return nil, fmt.Errorf("sales.List scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
