package memory

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	h handle
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.h.write(OpProductCreate, func(st *state) error {
		if p.Quantity < 0 {
			return domain.ErrInvalidInput
		}
		st.products = append(st.products, *p)
		return nil
	})
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.read(func(st *state) error {
		if i := st.productIndex(id); i >= 0 {
			cp := st.products[i]
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de TxRunner.Run el acceso ya es exclusivo.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	return r.h.write(OpProductUpdate, func(st *state) error {
		i := st.productIndex(p.ID)
		if i < 0 {
			return domain.ErrProductNotFound
		}
		if p.Quantity < 0 {
			return domain.ErrInvalidInput
		}
		st.products[i] = *p
		return nil
	})
}

func (r *ProductRepository) DecrementStock(_ context.Context, id string, qty int) (int, error) {
	var remaining int
	err := r.h.write(OpProductDecrement, func(st *state) error {
		i := st.productIndex(id)
		if i < 0 {
			return domain.ErrProductNotFound
		}
		if qty <= 0 || st.products[i].Quantity < qty {
			return domain.ErrInsufficientStock
		}
		st.products[i].Quantity -= qty
		st.products[i].UpdatedAt = time.Now().UTC()
		remaining = st.products[i].Quantity
		return nil
	})
	return remaining, err
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	return r.h.write(OpProductDelete, func(st *state) error {
		i := st.productIndex(id)
		if i < 0 {
			return domain.ErrProductNotFound
		}
		st.products = append(st.products[:i:i], st.products[i+1:]...)
		return nil
	})
}

func (r *ProductRepository) List(_ context.Context, ownerID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.h.read(func(st *state) error {
		out = make([]*entity.Product, 0)
		skipped := 0
		for _, p := range st.products {
			if ownerID != "" && p.UserID != ownerID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			cp := p
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) ListLowStock(_ context.Context, ownerID string) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.h.read(func(st *state) error {
		out = make([]*entity.Product, 0)
		for _, p := range st.products {
			if ownerID != "" && p.UserID != ownerID {
				continue
			}
			if p.IsLowStock() {
				cp := p
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}
