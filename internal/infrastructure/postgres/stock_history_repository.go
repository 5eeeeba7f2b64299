package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo historial append-only sobre PostgreSQL.
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

func (r *StockHistoryRepo) Append(ctx context.Context, e *entity.StockHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_history (id, product_id, user_id, old_quantity, new_quantity, transaction_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.ProductID, e.UserID, e.OldQuantity, e.NewQuantity, e.TransactionType, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock history: %w", err)
	}
	return nil
}

func (r *StockHistoryRepo) List(ctx context.Context) ([]repository.StockHistoryView, error) {
	const query = `
	SELECT h.id, h.product_id, h.user_id, h.old_quantity, h.new_quantity, h.transaction_type, h.created_at,
	       COALESCE(p.name, ''), COALESCE(u.username, '')
	FROM stock_history h
	LEFT JOIN products p ON p.id = h.product_id
	LEFT JOIN users    u ON u.id = h.user_id
	ORDER BY h.created_at DESC, h.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stockHistory.List: %w", err)
	}
	defer rows.Close()

	out := make([]repository.StockHistoryView, 0)
	for rows.Next() {
		var v repository.StockHistoryView
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.UserID, &v.OldQuantity, &v.NewQuantity, &v.TransactionType, &v.CreatedAt,
			&v.ProductName, &v.Username,
		); err != nil {
			return nil, fmt.Errorf("stockHistory.List scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
