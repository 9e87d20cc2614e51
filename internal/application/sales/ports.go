package sales

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que todas las escrituras del
// motor de ventas (cabecera, líneas, stock, saldo, documento) confirmen
// juntas o ninguna.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		itemRepo repository.ItemRepository,
		customerRepo repository.CustomerRepository,
		quotationRepo repository.QuotationRepository,
	) error) error
}
