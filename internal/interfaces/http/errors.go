package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-tienda/internal/application/dto"
	"github.com/jhoicas/gestor-tienda/internal/domain"
)

// saleErrorCodes código y estado HTTP por tipo de error de venta.
var saleErrorCodes = []struct {
	kind   error
	code   string
	status int
}{
	{domain.ErrInvalidDate, "INVALID_DATE", fiber.StatusBadRequest},
	{domain.ErrEmptySale, "EMPTY_SALE", fiber.StatusBadRequest},
	{domain.ErrUnregisteredProduct, "UNREGISTERED_PRODUCT", fiber.StatusUnprocessableEntity},
	{domain.ErrInvalidQuantity, "INVALID_QUANTITY", fiber.StatusBadRequest},
	{domain.ErrInvalidCategory, "INVALID_CATEGORY", fiber.StatusUnprocessableEntity},
	{domain.ErrNoAssignedActor, "NO_ASSIGNED_ACTOR", fiber.StatusUnprocessableEntity},
	{domain.ErrInvalidTotal, "INVALID_TOTAL", fiber.StatusUnprocessableEntity},
	{domain.ErrInvalidDiscount, "INVALID_DISCOUNT", fiber.StatusBadRequest},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK", fiber.StatusConflict},
	{domain.ErrPersistence, "PERSISTENCE", fiber.StatusInternalServerError},
}

// writeError traduce un error de dominio a status + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var se *domain.SaleError
	if errors.As(err, &se) {
		for _, m := range saleErrorCodes {
			if !errors.Is(se.Kind, m.kind) {
				continue
			}
			if m.kind == domain.ErrInsufficientStock {
				return c.Status(m.status).JSON(dto.InsufficientStockResponse{
					ErrorResponse: dto.ErrorResponse{Code: m.code, Message: se.Message},
					ProductID:     se.ProductID,
					ProductName:   se.ProductName,
					Available:     se.Available,
					Requested:     se.Requested,
				})
			}
			msg := se.Message
			if m.kind == domain.ErrPersistence {
				msg = "no se pudo guardar la operación; no se aplicaron cambios"
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidStock),
		errors.Is(err, domain.ErrEmptyCategory),
		errors.Is(err, domain.ErrInvalidUserName),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidPassword):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredential), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrPasswordExpired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PASSWORD_EXPIRED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
}
