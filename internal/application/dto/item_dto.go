package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de un ítem de inventario.
type CreateItemRequest struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Quantity     int64           `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// UpdateItemRequest actualiza datos del ítem. No toca la cantidad:
// eso es del ledger de stock (ajustes, ventas, compras).
type UpdateItemRequest struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// ItemResponse representación pública del ítem.
type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Quantity     int64           `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
