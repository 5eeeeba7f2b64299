package memory

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository         = (*SaleRepository)(nil)
	_ repository.StockHistoryRepository = (*StockHistoryRepository)(nil)
)

// SaleRepository implementación en memoria de repository.SaleRepository.
type SaleRepository struct {
	h handle
}

func (r *SaleRepository) Create(_ context.Context, s *entity.Sale) error {
	return r.h.write(OpSaleCreate, func(st *state) error {
		st.sales = append(st.sales, *s)
		return nil
	})
}

// List devuelve las ventas más recientes primero, con nombre de producto y usuario.
func (r *SaleRepository) List(_ context.Context, f repository.SaleFilter) ([]repository.SaleView, error) {
	var out []repository.SaleView
	err := r.h.read(func(st *state) error {
		out = make([]repository.SaleView, 0)
		for i := len(st.sales) - 1; i >= 0; i-- {
			s := st.sales[i]
			if f.ProductID != "" && s.ProductID != f.ProductID {
				continue
			}
			if f.UserID != "" && s.UserID != f.UserID {
				continue
			}
			out = append(out, repository.SaleView{
				Sale:        s,
				ProductName: productName(st, s.ProductID),
				Username:    username(st, s.UserID),
			})
		}
		return nil
	})
	return out, err
}

// StockHistoryRepository implementación en memoria del historial (append-only).
type StockHistoryRepository struct {
	h handle
}

func (r *StockHistoryRepository) Append(_ context.Context, e *entity.StockHistory) error {
	return r.h.write(OpHistoryAppend, func(st *state) error {
		st.history = append(st.history, *e)
		return nil
	})
}

func (r *StockHistoryRepository) List(_ context.Context) ([]repository.StockHistoryView, error) {
	var out []repository.StockHistoryView
	err := r.h.read(func(st *state) error {
		out = make([]repository.StockHistoryView, 0, len(st.history))
		for i := len(st.history) - 1; i >= 0; i-- {
			e := st.history[i]
			out = append(out, repository.StockHistoryView{
				StockHistory: e,
				ProductName:  productName(st, e.ProductID),
				Username:     username(st, e.UserID),
			})
		}
		return nil
	})
	return out, err
}

// productName emula el LEFT JOIN: producto eliminado -> "".
func productName(st *state, id string) string {
	if i := st.productIndex(id); i >= 0 {
		return st.products[i].Name
	}
	return ""
}

func username(st *state, id string) string {
	if u := st.userByID(id); u != nil {
		return u.Username
	}
	return ""
}
