package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago de una transacción.
const (
	PaymentTypeCash   = "CASH"
	PaymentTypeCredit = "CREDIT"
)

// Sale representa una venta confirmada. El crédito otorgado es
// TotalAmount - PaidAmount y vive como saldo del cliente.
type Sale struct {
	ID          string
	TenantID    string
	CustomerID  string // vacío = venta de mostrador sin cliente (solo contado)
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	PaymentType string // CASH | CREDIT
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []SaleItem
}

// Credit devuelve la porción no pagada (TotalAmount - PaidAmount).
func (s *Sale) Credit() decimal.Decimal {
	return s.TotalAmount.Sub(s.PaidAmount)
}

// SaleItem es una línea de venta. Price es un snapshot del precio al momento
// de crear la venta; inmutable una vez escrito.
type SaleItem struct {
	ID       string
	SaleID   string
	ItemID   string
	Quantity int64
	Price    decimal.Decimal
}

// Subtotal devuelve Quantity × Price de la línea.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
