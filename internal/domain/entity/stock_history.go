package entity

import "time"

// Tipos de transacción del historial de stock.
const (
	StockAdd    = "ADD"
	StockUpdate = "UPDATE"
	StockDelete = "DELETE"
	StockOrder  = "ORDER"
)

// StockHistory registro de auditoría (append-only) de un cambio de cantidad.
type StockHistory struct {
	ID              string
	ProductID       string
	UserID          string
	OldQuantity     int
	NewQuantity     int
	TransactionType string // ADD, UPDATE, DELETE, ORDER
	CreatedAt       time.Time
}
