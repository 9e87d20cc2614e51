package entity

import "time"

// Tipos de ajuste manual de stock.
const (
	AdjustmentTypeIncrease = "INCREASE"
	AdjustmentTypeDecrease = "DECREASE"
)

// StockAdjustment es un delta directo de stock sin efecto en saldos.
// Reason es obligatorio: todo ajuste manual debe quedar explicado.
type StockAdjustment struct {
	ID        string
	TenantID  string
	ItemID    string
	Type      string // INCREASE | DECREASE
	Quantity  int64
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
