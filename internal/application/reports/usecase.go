package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Límites del ranking de más vendidos.
const (
	DefaultTopLimit = 3
	MaxTopLimit     = 50
)

// ReportUseCase reportes de solo lectura: historial de stock, resumen de ventas y ranking.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	historyRepo repository.StockHistoryRepository
	pdf         SummaryPDFGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. Con pdf nil SalesSummaryPDF responde ErrNotFound.
func NewReportUseCase(reportRepo repository.ReportRepository, historyRepo repository.StockHistoryRepository, pdf SummaryPDFGenerator) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		historyRepo: historyRepo,
		pdf:         pdf,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// StockHistory devuelve todo el historial, más reciente primero.
func (uc *ReportUseCase) StockHistory(ctx context.Context) ([]dto.StockHistoryResponse, error) {
	rows, err := uc.historyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockHistoryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, dto.StockHistoryResponse{
			ID:              h.ID,
			ProductID:       h.ProductID,
			ProductName:     h.ProductName,
			UserID:          h.UserID,
			Username:        h.Username,
			OldQuantity:     h.OldQuantity,
			NewQuantity:     h.NewQuantity,
			TransactionType: h.TransactionType,
			CreatedAt:       h.CreatedAt,
		})
	}
	return out, nil
}

// SalesSummary agrupa por (producto, usuario). Admin ve todo; cualquier otro rol solo sus ventas.
func (uc *ReportUseCase) SalesSummary(ctx context.Context, role, userID string) ([]dto.SalesSummaryItem, error) {
	rows, err := uc.reportRepo.SalesSummary(ctx, summaryScope(role, userID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesSummaryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesSummaryItem{
			ProductID:         r.ProductID,
			ProductName:       r.ProductName,
			UserID:            r.UserID,
			Username:          r.Username,
			TotalQuantitySold: r.TotalQuantitySold,
			TotalRevenue:      r.TotalRevenue,
			TotalSalesCount:   r.TotalSalesCount,
		})
	}
	return out, nil
}

// TopSellingProducts ranking global por unidades vendidas. limit <= 0 usa 3; se acota a 50.
func (uc *ReportUseCase) TopSellingProducts(ctx context.Context, limit int) ([]dto.TopProductItem, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		limit = MaxTopLimit
	}
	rows, err := uc.reportRepo.TopSellingProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductItem{
			ProductID:         r.ProductID,
			ProductName:       r.ProductName,
			Price:             r.Price,
			TotalQuantitySold: r.TotalQuantitySold,
			TotalRevenue:      r.TotalRevenue,
			TotalSalesCount:   r.TotalSalesCount,
		})
	}
	return out, nil
}

// SalesSummaryPDF genera el mismo resumen que SalesSummary como documento PDF.
func (uc *ReportUseCase) SalesSummaryPDF(ctx context.Context, role, userID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("exportación PDF no configurada: %w", domain.ErrNotFound)
	}
	rows, err := uc.SalesSummary(ctx, role, userID)
	if err != nil {
		return nil, err
	}
	report := SalesSummaryReport{
		GeneratedAt:  uc.now(),
		OnlyOwnSales: summaryScope(role, userID) != "",
		Rows:         rows,
		TotalRevenue: decimal.Zero,
	}
	for _, r := range rows {
		report.TotalQuantity += r.TotalQuantitySold
		report.TotalRevenue = report.TotalRevenue.Add(r.TotalRevenue)
	}
	return uc.pdf.GenerateSalesSummaryPDF(ctx, report)
}

// summaryScope devuelve el filtro de usuario: vacío = todas las ventas.
func summaryScope(role, userID string) string {
	if role == entity.RoleAdmin {
		return ""
	}
	return userID
}
