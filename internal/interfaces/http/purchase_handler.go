package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/purchasing"
)

// PurchaseHandler maneja las peticiones HTTP del motor de compras,
// incluido el ciclo de vida de órdenes de compra.
type PurchaseHandler struct {
	uc *purchasing.PurchasingUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.PurchasingUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create POST /api/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	purchase, err := h.uc.CreatePurchase(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// GetByID GET /api/purchases/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	purchase, err := h.uc.GetPurchase(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// List GET /api/purchases?limit=20&offset=0
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.ListPurchases(c.Context(), GetIdentity(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Void DELETE /api/purchases/:id
func (h *PurchaseHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.VoidPurchase(c.Context(), GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateOrder POST /api/purchase-orders
func (h *PurchaseHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	order, err := h.uc.CreatePurchaseOrder(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetOrder GET /api/purchase-orders/:id
func (h *PurchaseHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.uc.GetPurchaseOrder(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ListOrders GET /api/purchase-orders?limit=20&offset=0
func (h *PurchaseHandler) ListOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.ListPurchaseOrders(c.Context(), GetIdentity(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UpdateOrderStatus PATCH /api/purchase-orders/:id/status
func (h *PurchaseHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	order, err := h.uc.UpdatePurchaseOrderStatus(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// DeleteOrder DELETE /api/purchase-orders/:id
func (h *PurchaseHandler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.uc.DeletePurchaseOrder(c.Context(), GetIdentity(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConvertOrder POST /api/purchase-orders/:id/convert
func (h *PurchaseHandler) ConvertOrder(c *fiber.Ctx) error {
	var in dto.ConvertPurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	purchase, err := h.uc.ConvertPurchaseOrder(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}
