package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockHistoryResponse entrada del historial de stock.
type StockHistoryResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"productId"`
	ProductName     string    `json:"productName"`
	UserID          string    `json:"userId"`
	Username        string    `json:"username"`
	OldQuantity     int       `json:"oldQuantity"`
	NewQuantity     int       `json:"newQuantity"`
	TransactionType string    `json:"transactionType"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SalesSummaryItem fila del resumen de ventas por (producto, usuario).
type SalesSummaryItem struct {
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	UserID            string          `json:"userId"`
	Username          string          `json:"username"`
	TotalQuantitySold int             `json:"totalQuantitySold"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalSalesCount   int             `json:"totalSalesCount"`
}

// TopProductItem fila del ranking de productos más vendidos.
type TopProductItem struct {
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	Price             decimal.Decimal `json:"price"`
	TotalQuantitySold int             `json:"totalQuantitySold"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalSalesCount   int             `json:"totalSalesCount"`
}

// TopSellingRequest query de /reports/top-selling-products.
type TopSellingRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}
