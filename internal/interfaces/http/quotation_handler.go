package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/quotation"
)

// QuotationHandler maneja el ciclo de vida de cotizaciones. La conversión
// a venta vive en SaleHandler (motor de ventas).
type QuotationHandler struct {
	uc *quotation.QuotationUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *quotation.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Create POST /api/quotations
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	q, err := h.uc.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

// GetByID GET /api/quotations/:id
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	q, err := h.uc.Get(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(q)
}

// List GET /api/quotations?limit=20&offset=0
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.List(c.Context(), GetIdentity(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus PATCH /api/quotations/:id/status
func (h *QuotationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateQuotationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	q, err := h.uc.UpdateStatus(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(q)
}

// Delete DELETE /api/quotations/:id
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
