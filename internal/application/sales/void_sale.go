package sales

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// VoidSale anula una venta: restaura el stock de cada línea, revierte el
// crédito del cliente y borra líneas y cabecera, todo en una transacción.
// Restringido al rol Owner (verificación exacta de rol, no de tabla).
func (uc *SalesUseCase) VoidSale(ctx context.Context, id authz.Identity, saleID string) error {
	if err := authz.Require(id, permission.ActionVoidSales); err != nil {
		return err
	}

	sale, err := uc.saleRepo.GetByID(ctx, id.TenantID, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.NotFoundf("venta no encontrada")
	}
	credit := sale.Credit()

	err = uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		itemRepo repository.ItemRepository,
		customerRepo repository.CustomerRepository,
		_ repository.QuotationRepository,
	) error {
		for itemID, qty := range aggregateQuantities(sale.Items) {
			if err := itemRepo.Increment(ctx, id.TenantID, itemID, qty); err != nil {
				return err
			}
		}
		// Revertir la deuda que la venta había generado.
		if credit.IsPositive() && sale.CustomerID != "" {
			if err := customerRepo.SubBalance(ctx, id.TenantID, sale.CustomerID, credit); err != nil {
				return err
			}
		}
		return saleRepo.Delete(ctx, id.TenantID, sale.ID)
	})
	if err != nil {
		return err
	}

	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionVoid,
		Entity:      "sale",
		EntityID:    sale.ID,
	})
	return nil
}
