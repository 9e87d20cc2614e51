package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/retail-ledger/internal/application/payments"
	"github.com/tu-usuario/retail-ledger/internal/application/purchasing"
	"github.com/tu-usuario/retail-ledger/internal/application/quotation"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
	"github.com/tu-usuario/retail-ledger/internal/application/stock"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// Un solo runner satisface los contratos de todos los motores.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ quotation.TxRunner = (*TxRunner)(nil)
var _ payments.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSales inicia una transacción con los repos del motor de ventas.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	quotationRepo repository.QuotationRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewSaleRepository(q), NewItemRepository(q), NewCustomerRepository(q), NewQuotationRepository(q))
	})
}

// RunPurchasing inicia una transacción con los repos del motor de compras.
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewPurchaseRepository(q), NewItemRepository(q), NewSupplierRepository(q), NewPurchaseOrderRepository(q))
	})
}

// RunDocuments inicia una transacción con los repos de documentos borrador.
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(
	quotationRepo repository.QuotationRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewQuotationRepository(q), NewPurchaseOrderRepository(q))
	})
}

// RunPayments inicia una transacción con los repos de pagos y saldos.
func (r *TxRunner) RunPayments(ctx context.Context, fn func(
	customerPaymentRepo repository.CustomerPaymentRepository,
	supplierPaymentRepo repository.SupplierPaymentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewCustomerPaymentRepository(q), NewSupplierPaymentRepository(q), NewCustomerRepository(q), NewSupplierRepository(q))
	})
}

// RunStock inicia una transacción con los repos de ajustes de stock.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	adjustmentRepo repository.StockAdjustmentRepository,
	itemRepo repository.ItemRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewStockAdjustmentRepository(q), NewItemRepository(q))
	})
}
