package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
)

// SummaryPDFGenerator puerto para renderizar el resumen de ventas (implementado en infrastructure/pdf).
type SummaryPDFGenerator interface {
	GenerateSalesSummaryPDF(ctx context.Context, report SalesSummaryReport) ([]byte, error)
}

// SalesSummaryReport datos ya agregados que se vuelcan al PDF.
type SalesSummaryReport struct {
	GeneratedAt   time.Time
	OnlyOwnSales  bool // true si el usuario solo ve sus ventas
	Rows          []dto.SalesSummaryItem
	TotalQuantity int
	TotalRevenue  decimal.Decimal
}
