package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest una línea de compra con costo unitario.
type PurchaseLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreatePurchaseRequest crea una compra. SupplierID vacío = compra de
// contado sin proveedor (el crédito exige proveedor).
type CreatePurchaseRequest struct {
	SupplierID  string                `json:"supplier_id"`
	PaidAmount  decimal.Decimal       `json:"paid_amount"`
	PaymentType string                `json:"payment_type"`
	Items       []PurchaseLineRequest `json:"items"`
}

// PurchaseLineResponse una línea de compra.
type PurchaseLineResponse struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra con totales y crédito calculado.
type PurchaseResponse struct {
	ID          string                 `json:"id"`
	SupplierID  string                 `json:"supplier_id,omitempty"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	PaidAmount  decimal.Decimal        `json:"paid_amount"`
	Credit      decimal.Decimal        `json:"credit"`
	PaymentType string                 `json:"payment_type"`
	Items       []PurchaseLineResponse `json:"items"`
	CreatedAt   time.Time              `json:"created_at"`
}
