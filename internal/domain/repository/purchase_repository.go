package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia de compras.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Purchase, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Purchase, error)
	// Delete borra líneas y cabecera (void).
	Delete(ctx context.Context, tenantID, id string) error
}
