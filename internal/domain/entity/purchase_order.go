package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. RECEIVED y CANCELLED son terminales;
// RECEIVED solo se alcanza vía conversión a Purchase.
const (
	PurchaseOrderStatusDraft     = "DRAFT"
	PurchaseOrderStatusSent      = "SENT"
	PurchaseOrderStatusReceived  = "RECEIVED"
	PurchaseOrderStatusCancelled = "CANCELLED"
)

// ValidPurchaseOrderStatus reporta si el string es un estado conocido.
func ValidPurchaseOrderStatus(s string) bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder es un documento borrador de abastecimiento: no mueve stock
// ni saldos. Su conversión a Purchase (recepción) sí, una única vez.
type PurchaseOrder struct {
	ID                  string
	TenantID            string
	SupplierID          string // obligatorio para convertir
	Status              string
	TotalAmount         decimal.Decimal
	ConvertedPurchaseID *string
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Items               []PurchaseOrderItem
}

// Converted reporta si la orden ya fue recibida (convertida en Purchase).
func (po *PurchaseOrder) Converted() bool { return po.ConvertedPurchaseID != nil }

// Convertible reporta si el estado permite recepción: solo DRAFT o SENT.
func (po *PurchaseOrder) Convertible() bool {
	return po.Status == PurchaseOrderStatusDraft || po.Status == PurchaseOrderStatusSent
}

// PurchaseOrderItem es una línea de la orden con costo unitario pactado.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ItemID          string
	ItemName        string
	Quantity        int64
	Price           decimal.Decimal
}

// Subtotal devuelve Quantity × Price de la línea.
func (i *PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
