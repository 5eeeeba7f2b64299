package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Los campos numéricos aceptan número JSON o string numérico ("12", "9.99").
type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Quantity     *decimal.Decimal `json:"quantity" validate:"required"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	Category     string           `json:"category" validate:"required,min=1,max=100"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// UpdateProductRequest entrada para actualizar un producto. Solo se aplican los campos enviados.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Price        *decimal.Decimal `json:"price"`
	Category     *string          `json:"category" validate:"omitempty,min=1,max=100"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	ReorderLevel int             `json:"reorder_level"`
	UserID       string          `json:"userId"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
