package memory

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/application/payments"
	"github.com/tu-usuario/retail-ledger/internal/application/purchasing"
	"github.com/tu-usuario/retail-ledger/internal/application/quotation"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
	"github.com/tu-usuario/retail-ledger/internal/application/stock"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var (
	_ sales.TxRunner      = (*TxRunner)(nil)
	_ purchasing.TxRunner = (*TxRunner)(nil)
	_ quotation.TxRunner  = (*TxRunner)(nil)
	_ payments.TxRunner   = (*TxRunner)(nil)
	_ stock.TxRunner      = (*TxRunner)(nil)
)

// TxRunner simula la atomicidad transaccional: toma un snapshot del Store
// antes de ejecutar la función y lo restaura completo si falla. Así un
// fallo a mitad de camino nunca deja escrituras parciales visibles.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

func (r *TxRunner) run(fn func() error) error {
	snap := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// RunSales ejecuta fn con los repositorios del motor de ventas.
func (r *TxRunner) RunSales(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	quotationRepo repository.QuotationRepository,
) error) error {
	return r.run(func() error {
		return fn(NewSaleRepository(r.s), NewItemRepository(r.s),
			NewCustomerRepository(r.s), NewQuotationRepository(r.s))
	})
}

// RunPurchasing ejecuta fn con los repositorios del motor de compras.
func (r *TxRunner) RunPurchasing(_ context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return r.run(func() error {
		return fn(NewPurchaseRepository(r.s), NewItemRepository(r.s),
			NewSupplierRepository(r.s), NewPurchaseOrderRepository(r.s))
	})
}

// RunDocuments ejecuta fn con los repositorios de documentos borrador.
func (r *TxRunner) RunDocuments(_ context.Context, fn func(
	quotationRepo repository.QuotationRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return r.run(func() error {
		return fn(NewQuotationRepository(r.s), NewPurchaseOrderRepository(r.s))
	})
}

// RunPayments ejecuta fn con los repositorios de pagos y saldos.
func (r *TxRunner) RunPayments(_ context.Context, fn func(
	customerPaymentRepo repository.CustomerPaymentRepository,
	supplierPaymentRepo repository.SupplierPaymentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	return r.run(func() error {
		return fn(NewCustomerPaymentRepository(r.s), NewSupplierPaymentRepository(r.s),
			NewCustomerRepository(r.s), NewSupplierRepository(r.s))
	})
}

// RunStock ejecuta fn con los repositorios de ajustes y stock.
func (r *TxRunner) RunStock(_ context.Context, fn func(
	adjustmentRepo repository.StockAdjustmentRepository,
	itemRepo repository.ItemRepository,
) error) error {
	return r.run(func() error {
		return fn(NewStockAdjustmentRepository(r.s), NewItemRepository(r.s))
	})
}
