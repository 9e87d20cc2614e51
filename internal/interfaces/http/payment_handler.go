package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/payments"
)

// PaymentHandler maneja abonos de clientes, pagos a proveedores y los
// overrides administrativos de saldo.
type PaymentHandler struct {
	uc *payments.PaymentsUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payments.PaymentsUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// RecordCustomerPayment POST /api/customers/:id/payments
func (h *PaymentHandler) RecordCustomerPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	payment, err := h.uc.RecordCustomerPayment(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// RecordSupplierPayment POST /api/suppliers/:id/payments
func (h *PaymentHandler) RecordSupplierPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	payment, err := h.uc.RecordSupplierPayment(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// SetCustomerBalance PUT /api/customers/:id/balance
func (h *PaymentHandler) SetCustomerBalance(c *fiber.Ctx) error {
	var in dto.SetBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetCustomerBalance(c.Context(), GetIdentity(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetCustomerBalances PUT /api/customers/balances
func (h *PaymentHandler) SetCustomerBalances(c *fiber.Ctx) error {
	var in dto.SetBalancesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetCustomerBalances(c.Context(), GetIdentity(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCustomerPayments GET /api/customers/:id/payments
func (h *PaymentHandler) ListCustomerPayments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()
	rows, err := h.uc.ListCustomerPayments(c.Context(), GetIdentity(c), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// ListSupplierPayments GET /api/suppliers/:id/payments
func (h *PaymentHandler) ListSupplierPayments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()
	rows, err := h.uc.ListSupplierPayments(c.Context(), GetIdentity(c), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// SetSupplierBalance PUT /api/suppliers/:id/balance
func (h *PaymentHandler) SetSupplierBalance(c *fiber.Ctx) error {
	var in dto.SetBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetSupplierBalance(c.Context(), GetIdentity(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetSupplierBalances PUT /api/suppliers/balances
func (h *PaymentHandler) SetSupplierBalances(c *fiber.Ctx) error {
	var in dto.SetSupplierBalancesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetSupplierBalances(c.Context(), GetIdentity(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
