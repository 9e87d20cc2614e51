package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización. REJECTED y EXPIRED son terminales y bloquean
// la conversión a venta.
const (
	QuotationStatusDraft    = "DRAFT"
	QuotationStatusSent     = "SENT"
	QuotationStatusAccepted = "ACCEPTED"
	QuotationStatusRejected = "REJECTED"
	QuotationStatusExpired  = "EXPIRED"
)

// ValidQuotationStatus reporta si el string es un estado conocido.
func ValidQuotationStatus(s string) bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted,
		QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// Quotation es un documento borrador de precios: no mueve stock ni saldos.
// Solo su conversión a Sale (una única vez) tiene efectos de ledger;
// ConvertedSaleID != nil marca la cotización como convertida.
type Quotation struct {
	ID              string
	TenantID        string
	CustomerID      string
	Status          string
	TotalAmount     decimal.Decimal
	ConvertedSaleID *string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []QuotationItem
}

// Converted reporta si la cotización ya fue convertida en venta.
func (q *Quotation) Converted() bool { return q.ConvertedSaleID != nil }

// Convertible reporta si el estado actual permite conversión.
// REJECTED y EXPIRED la bloquean; cualquier otro estado la permite.
func (q *Quotation) Convertible() bool {
	return !q.Converted() &&
		q.Status != QuotationStatusRejected && q.Status != QuotationStatusExpired
}

// QuotationItem es una línea snapshot: nombre y precio quedan congelados al
// crear la cotización, desacoplados del Item vivo.
type QuotationItem struct {
	ID          string
	QuotationID string
	ItemID      string
	ItemName    string
	Quantity    int64
	Price       decimal.Decimal
}

// Subtotal devuelve Quantity × Price de la línea.
func (i *QuotationItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
