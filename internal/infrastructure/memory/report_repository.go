package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepository)(nil)

// ReportRepository agregaciones de ventas en memoria, con el mismo orden que las consultas SQL.
type ReportRepository struct {
	h handle
}

func (r *ReportRepository) SalesSummary(_ context.Context, userID string) ([]repository.SalesSummaryResult, error) {
	var out []repository.SalesSummaryResult
	err := r.h.read(func(st *state) error {
		type key struct{ product, user string }
		idx := map[key]int{}
		out = make([]repository.SalesSummaryResult, 0)
		for _, s := range st.sales {
			if userID != "" && s.UserID != userID {
				continue
			}
			k := key{s.ProductID, s.UserID}
			i, ok := idx[k]
			if !ok {
				i = len(out)
				idx[k] = i
				out = append(out, repository.SalesSummaryResult{
					ProductID:    s.ProductID,
					ProductName:  productName(st, s.ProductID),
					UserID:       s.UserID,
					Username:     username(st, s.UserID),
					TotalRevenue: decimal.Zero,
				})
			}
			out[i].TotalQuantitySold += s.Quantity
			out[i].TotalRevenue = out[i].TotalRevenue.Add(s.TotalPrice)
			out[i].TotalSalesCount++
		}
		sort.SliceStable(out, func(a, b int) bool {
			if c := out[a].TotalRevenue.Cmp(out[b].TotalRevenue); c != 0 {
				return c > 0
			}
			if out[a].ProductID != out[b].ProductID {
				return out[a].ProductID < out[b].ProductID
			}
			return out[a].UserID < out[b].UserID
		})
		return nil
	})
	return out, err
}

func (r *ReportRepository) TopSellingProducts(_ context.Context, limit int) ([]repository.TopProductResult, error) {
	var out []repository.TopProductResult
	err := r.h.read(func(st *state) error {
		idx := map[string]int{}
		out = make([]repository.TopProductResult, 0)
		for _, s := range st.sales {
			i, ok := idx[s.ProductID]
			if !ok {
				i = len(out)
				idx[s.ProductID] = i
				row := repository.TopProductResult{ProductID: s.ProductID, TotalRevenue: decimal.Zero, Price: decimal.Zero}
				if pi := st.productIndex(s.ProductID); pi >= 0 {
					row.ProductName = st.products[pi].Name
					row.Price = st.products[pi].Price
				}
				out = append(out, row)
			}
			out[i].TotalQuantitySold += s.Quantity
			out[i].TotalRevenue = out[i].TotalRevenue.Add(s.TotalPrice)
			out[i].TotalSalesCount++
		}
		// Desempate por orden de creación del producto; los eliminados van al final.
		rank := func(id string) int {
			if pi := st.productIndex(id); pi >= 0 {
				return pi
			}
			return len(st.products)
		}
		sort.SliceStable(out, func(a, b int) bool {
			if out[a].TotalQuantitySold != out[b].TotalQuantitySold {
				return out[a].TotalQuantitySold > out[b].TotalQuantitySold
			}
			ra, rb := rank(out[a].ProductID), rank(out[b].ProductID)
			if ra != rb {
				return ra < rb
			}
			return out[a].ProductID < out[b].ProductID
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}
