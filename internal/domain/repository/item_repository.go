package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// ItemRepository define el puerto del ledger de stock. Todo cambio de
// Quantity pasa por Increment/Decrement/SetQuantity; Update nunca toca
// la cantidad. Toda operación filtra por tenantID.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Item, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Item, error)
	// Update persiste nombre, SKU y precios. No modifica Quantity.
	Update(ctx context.Context, item *entity.Item) error

	// Increment suma qty al stock del ítem.
	Increment(ctx context.Context, tenantID, id string, qty int64) error
	// Decrement resta qty con precondición quantity >= qty en una sola
	// escritura condicional; cero filas afectadas = InsufficientStock
	// (o NotFound si el ítem no existe en el tenant).
	Decrement(ctx context.Context, tenantID, id string, qty int64) error
	// SetQuantity es el override administrativo: fija la cantidad absoluta.
	// Rechaza valores negativos. Auditar con acción distinta al movimiento normal.
	SetQuantity(ctx context.Context, tenantID, id string, qty int64) error
	// UpdateCostPrice refresca el costo del ítem (recepción de compras).
	UpdateCostPrice(ctx context.Context, tenantID, id string, cost decimal.Decimal) error
}
