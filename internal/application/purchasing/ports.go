package purchasing

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Atomicidad para el motor de compras.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		itemRepo repository.ItemRepository,
		supplierRepo repository.SupplierRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error

	// RunDocuments alcanza solo los repositorios de documentos borrador:
	// crear una orden escribe cabecera y líneas en una sola transacción.
	RunDocuments(ctx context.Context, fn func(
		quotationRepo repository.QuotationRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
