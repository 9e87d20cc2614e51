package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP del motor de ventas.
type SaleHandler struct {
	uc *sales.SalesUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SalesUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sale, err := h.uc.CreateSale(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// List GET /api/sales?limit=20&offset=0
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.ListSales(c.Context(), GetIdentity(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Edit PUT /api/sales/:id
func (h *SaleHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sale, err := h.uc.EditSale(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// Void DELETE /api/sales/:id
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.VoidSale(c.Context(), GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConvertQuotation POST /api/quotations/:id/convert
func (h *SaleHandler) ConvertQuotation(c *fiber.Ctx) error {
	var in dto.ConvertQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sale, err := h.uc.ConvertQuotation(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}
