package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
// TotalPrice es opcional; si se envía debe coincidir con cantidad × precio.
type CreateSaleRequest struct {
	ProductID  string           `json:"productId" validate:"required"`
	Quantity   *decimal.Decimal `json:"quantity" validate:"required"`
	TotalPrice *decimal.Decimal `json:"totalPrice"`
}

// SaleResponse salida de una venta. ProductName/Username solo en listados.
type SaleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	UserID      string          `json:"userId"`
	Username    string          `json:"username,omitempty"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
}
