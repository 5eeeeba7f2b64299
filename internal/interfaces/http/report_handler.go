package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/reports"
)

// ReportHandler reportes de stock y ventas.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockHistory godoc
// @Summary      Historial de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockHistoryResponse
// @Router       /api/reports/stock-history [get]
func (h *ReportHandler) StockHistory(c *fiber.Ctx) error {
	out, err := h.uc.StockHistory(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SalesSummary godoc
// @Summary      Resumen de ventas por producto y usuario
// @Description  Admin ve todas las ventas; el resto de roles solo las propias.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SalesSummaryItem
// @Router       /api/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	out, err := h.uc.SalesSummary(c.UserContext(), GetRole(c), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SalesSummaryPDF godoc
// @Summary      Resumen de ventas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/sales-summary/pdf [get]
func (h *ReportHandler) SalesSummaryPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.SalesSummaryPDF(c.UserContext(), GetRole(c), GetUserID(c))
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("resumen-ventas-%s.pdf", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// TopSellingProducts godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad de productos (por defecto 3, máx 50)"
// @Success      200  {array}   dto.TopProductItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top-selling-products [get]
func (h *ReportHandler) TopSellingProducts(c *fiber.Ctx) error {
	var q dto.TopSellingRequest
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery()
	}
	if err := validate(q); err != nil {
		return err
	}
	out, err := h.uc.TopSellingProducts(c.UserContext(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
