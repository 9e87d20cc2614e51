package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra confirmada: incrementa stock y el crédito
// no pagado (TotalAmount - PaidAmount) aumenta el saldo del proveedor.
type Purchase struct {
	ID          string
	TenantID    string
	SupplierID  string // vacío = compra de contado sin proveedor
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	PaymentType string // CASH | CREDIT
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []PurchaseItem
}

// Credit devuelve la porción no pagada (TotalAmount - PaidAmount).
func (p *Purchase) Credit() decimal.Decimal {
	return p.TotalAmount.Sub(p.PaidAmount)
}

// PurchaseItem es una línea de compra. Price es el costo unitario snapshot;
// al confirmar la compra se refresca el costo del Item con este valor.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ItemID     string
	Quantity   int64
	Price      decimal.Decimal
}

// Subtotal devuelve Quantity × Price de la línea.
func (i *PurchaseItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
