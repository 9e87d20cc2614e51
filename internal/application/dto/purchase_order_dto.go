package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineRequest una línea de orden de compra.
type PurchaseOrderLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreatePurchaseOrderRequest crea una orden de compra en DRAFT.
// SupplierID puede quedar vacío en el borrador, pero la conversión lo exige.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Items      []PurchaseOrderLineRequest `json:"items"`
}

// UpdatePurchaseOrderStatusRequest mueve la orden entre estados no terminales
// (DRAFT ⇄ SENT) o la cancela. RECEIVED solo se alcanza vía conversión.
type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status"`
}

// ConvertPurchaseOrderRequest parámetros de la recepción.
type ConvertPurchaseOrderRequest struct {
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PaymentType string          `json:"payment_type"`
}

// PurchaseOrderLineResponse línea de la orden.
type PurchaseOrderLineResponse struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse orden completa.
type PurchaseOrderResponse struct {
	ID                  string                      `json:"id"`
	SupplierID          string                      `json:"supplier_id,omitempty"`
	Status              string                      `json:"status"`
	TotalAmount         decimal.Decimal             `json:"total_amount"`
	ConvertedPurchaseID string                      `json:"converted_purchase_id,omitempty"`
	Items               []PurchaseOrderLineResponse `json:"items"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}
