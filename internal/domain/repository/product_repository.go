package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// ownerID vacío significa "todos los productos"; con valor filtra por user_id.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// DecrementStock resta qty solo si hay stock suficiente y devuelve la cantidad resultante.
	// Retorna domain.ErrInsufficientStock si la condición no se cumple.
	DecrementStock(ctx context.Context, id string, qty int) (int, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, ownerID string) ([]*entity.Product, error)
}
