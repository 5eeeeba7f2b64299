package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/pkg/validator"
)

// apiError error HTTP ya resuelto por el handler (cuerpo inválido, validación).
type apiError struct {
	status  int
	code    string
	message string
	details any
}

func (e *apiError) Error() string { return e.message }

func invalidBody() error {
	return &apiError{status: fiber.StatusBadRequest, code: "INVALID_BODY", message: "cuerpo inválido"}
}

func invalidQuery() error {
	return &apiError{status: fiber.StatusBadRequest, code: "INVALID_PARAMS", message: "parámetros de consulta inválidos"}
}

// validate aplica los tags `validate` del DTO; nil si es válido.
func validate(in any) error {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return &apiError{status: fiber.StatusBadRequest, code: "VALIDATION", message: "datos inválidos", details: errs}
	}
	return nil
}

// domainErrors tabla error de dominio → (status, code).
var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrDuplicateUser, fiber.StatusBadRequest, "DUPLICATE_USER"},
	{domain.ErrPriceMismatch, fiber.StatusBadRequest, "PRICE_MISMATCH"},
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "MISSING_TOKEN"},
	{domain.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{domain.ErrMissingRole, fiber.StatusUnauthorized, "MISSING_ROLE"},
	{domain.ErrInvalidCredential, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrAdminExists, fiber.StatusConflict, "ADMIN_EXISTS"},
}

// ErrorHandler centraliza la conversión de errores a dto.ErrorResponse.
// exposeInternal incluye el texto del error en los 500 (solo fuera de producción).
func ErrorHandler(log zerolog.Logger, exposeInternal bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			return c.Status(apiErr.status).JSON(dto.ErrorResponse{Code: apiErr.code, Message: apiErr.message, Details: apiErr.details})
		}
		for _, m := range domainErrors {
			if errors.Is(err, m.err) {
				return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
			}
		}
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			code := "BAD_REQUEST"
			switch fiberErr.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			}
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{Code: code, Message: fiberErr.Message})
		}

		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		resp := dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
		if exposeInternal {
			resp.Details = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}
