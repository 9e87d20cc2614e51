package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/stock"
)

// StockHandler maneja ajustes manuales de stock y el override de cantidad.
type StockHandler struct {
	uc *stock.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateAdjustment POST /api/stock/adjustments
func (h *StockHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateStockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	adjustment, err := h.uc.CreateAdjustment(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(adjustment)
}

// ListAdjustments GET /api/stock/adjustments/:itemId
func (h *StockHandler) ListAdjustments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()
	rows, err := h.uc.ListAdjustments(c.Context(), GetIdentity(c), c.Params("itemId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// SetQuantity PUT /api/stock/quantity
func (h *StockHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetQuantity(c.Context(), GetIdentity(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
