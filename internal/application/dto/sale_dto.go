package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea de venta. Price vacío (cero) toma el precio de
// venta vigente del ítem; el valor usado queda como snapshot inmutable.
type SaleLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateSaleRequest crea una venta. CustomerID vacío = venta de mostrador
// de contado (el crédito exige cliente).
type CreateSaleRequest struct {
	CustomerID  string            `json:"customer_id"`
	PaidAmount  decimal.Decimal   `json:"paid_amount"`
	PaymentType string            `json:"payment_type"`
	Items       []SaleLineRequest `json:"items"`
}

// EditSaleRequest reemplaza por completo las líneas y la cabecera.
type EditSaleRequest struct {
	CustomerID  string            `json:"customer_id"`
	PaidAmount  decimal.Decimal   `json:"paid_amount"`
	PaymentType string            `json:"payment_type"`
	Items       []SaleLineRequest `json:"items"`
}

// SaleLineResponse una línea con su snapshot de precio.
type SaleLineResponse struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con totales y crédito calculado.
type SaleResponse struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id,omitempty"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	PaidAmount  decimal.Decimal    `json:"paid_amount"`
	Credit      decimal.Decimal    `json:"credit"`
	PaymentType string             `json:"payment_type"`
	Items       []SaleLineResponse `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
}
