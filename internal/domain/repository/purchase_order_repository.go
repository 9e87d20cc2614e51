package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// PurchaseOrderRepository persiste órdenes de compra y gobierna su puerta
// de idempotencia de recepción.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, tenantID, id, status string) error
	Delete(ctx context.Context, tenantID, id string) error

	// MarkReceived fuerza status=RECEIVED y fija converted_purchase_id en
	// una sola escritura condicional: solo desde DRAFT o SENT. Cero filas
	// afectadas = Conflict (ya recibida o cancelada).
	MarkReceived(ctx context.Context, tenantID, id, purchaseID string) error
}
