package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago registrables.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCard     = "CARD"
)

// CustomerPayment registra un abono de un cliente: decrementa su saldo
// (deuda) exactamente por Amount. Nunca toca stock.
type CustomerPayment struct {
	ID         string
	TenantID   string
	CustomerID string
	Amount     decimal.Decimal
	Method     string
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
}

// SupplierPayment registra un pago a un proveedor: decrementa lo que el
// negocio le debe. Mecánica idéntica a CustomerPayment, sentido opuesto.
type SupplierPayment struct {
	ID         string
	TenantID   string
	SupplierID string
	Amount     decimal.Decimal
	Method     string
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
}
