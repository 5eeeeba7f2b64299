package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una venta puntual de un producto. Inmutable una vez creada.
type Sale struct {
	ID         string
	ProductID  string
	UserID     string
	Quantity   int
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}
