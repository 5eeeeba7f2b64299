package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderLevel umbral de reorden cuando el producto no define uno.
const DefaultReorderLevel = 5

// MaxAmount mayor importe representable en NUMERIC(12,2); aplica a precios y totales.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Product representa un producto del inventario. Quantity nunca es negativa.
type Product struct {
	ID           string
	Name         string
	Quantity     int
	Price        decimal.Decimal // precio unitario de venta
	Category     string
	ReorderLevel int
	UserID       string // usuario que creó el producto
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si la cantidad está en o bajo el punto de reorden.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}
