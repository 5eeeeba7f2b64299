package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
)

// SaleHandler registro y consulta de ventas.
type SaleHandler struct {
	record *sales.RecordSaleUseCase
	query  *sales.QueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(record *sales.RecordSaleUseCase, query *sales.QueryUseCase) *SaleHandler {
	return &SaleHandler{record: record, query: query}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock y registra la venta en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "productId, quantity, totalPrice opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	if err := validate(in); err != nil {
		return err
	}
	input, err := sales.FromRequest(GetUserID(c), in)
	if err != nil {
		return err
	}
	out, err := h.record.RecordSale(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.query.ListSales(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Ventas de un producto
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/product/{productId} [get]
func (h *SaleHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.query.ListSalesByProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Ventas de un usuario
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/user/{userId} [get]
func (h *SaleHandler) ListByUser(c *fiber.Ctx) error {
	out, err := h.query.ListSalesByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
