package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
)

// respondError es el mapeo central de errores de dominio a HTTP. Cada Kind
// tiene un status fijo; el Meta del error viaja como Detail para que el
// cliente sepa qué corregir (stock disponible, saldo actual, permiso).
func respondError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	status := fiber.StatusInternalServerError
	switch de.Kind {
	case domain.KindUnauthenticated, domain.KindNoTenant:
		status = fiber.StatusUnauthorized
	case domain.KindForbidden:
		status = fiber.StatusForbidden
	case domain.KindNotFound:
		status = fiber.StatusNotFound
	case domain.KindValidation:
		status = fiber.StatusUnprocessableEntity
	case domain.KindInsufficientStock, domain.KindInsufficientBalance, domain.KindConflict:
		status = fiber.StatusConflict
	case domain.KindTransient:
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:    string(de.Kind),
		Message: de.Message,
		Detail:  de.Meta,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
