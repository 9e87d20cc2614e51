package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// CreateSale crea una venta: valida líneas y stock, calcula total y crédito,
// y en una sola transacción persiste cabecera+líneas, descuenta stock por
// línea y suma el crédito al saldo del cliente si aplica.
func (uc *SalesUseCase) CreateSale(ctx context.Context, id authz.Identity, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := authz.Require(id, permission.ActionCreateSales); err != nil {
		return nil, err
	}
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	if !validPaymentType(in.PaymentType) {
		return nil, domain.Validationf("payment_type debe ser CASH o CREDIT")
	}

	// Cliente: opcional, pero si viene debe ser del tenant.
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, id.TenantID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.NotFoundf("cliente no encontrado")
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		TenantID:    id.TenantID,
		CustomerID:  in.CustomerID,
		PaymentType: in.PaymentType,
		CreatedBy:   id.PrincipalID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Resolver líneas: snapshot de precio (precio de venta vigente si la
	// línea no trae uno) y validación de pertenencia al tenant.
	total := decimal.Zero
	for _, l := range in.Items {
		item, err := uc.itemRepo.GetByID(ctx, id.TenantID, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NotFoundf("ítem no encontrado")
		}
		price := l.Price
		if price.IsZero() {
			price = item.SellingPrice
		}
		line := entity.SaleItem{
			ID:       uuid.New().String(),
			SaleID:   sale.ID,
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Price:    price,
		}
		sale.Items = append(sale.Items, line)
		total = total.Add(line.Subtotal())
	}
	sale.TotalAmount = total
	sale.PaidAmount = clampPaid(in.PaidAmount, total)
	credit := sale.Credit()

	// El crédito solo puede vivir en el saldo de un cliente: sin cliente
	// no hay a quién cargárselo.
	if credit.IsPositive() && sale.CustomerID == "" {
		return nil, domain.Validationf("una venta a crédito requiere cliente")
	}

	// Pre-chequeo de stock agregado por ítem: rechazo tipado antes de abrir
	// la transacción. El decremento condicional dentro de la tx sigue siendo
	// la verificación autoritativa bajo concurrencia.
	for itemID, qty := range aggregateQuantities(sale.Items) {
		item, err := uc.itemRepo.GetByID(ctx, id.TenantID, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NotFoundf("ítem no encontrado")
		}
		if item.Quantity < qty {
			return nil, domain.InsufficientStock(itemID, item.Quantity, qty)
		}
	}

	err := uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		itemRepo repository.ItemRepository,
		customerRepo repository.CustomerRepository,
		_ repository.QuotationRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for itemID, qty := range aggregateQuantities(sale.Items) {
			if err := itemRepo.Decrement(ctx, id.TenantID, itemID, qty); err != nil {
				return err
			}
		}
		if credit.IsPositive() {
			if err := customerRepo.AddBalance(ctx, id.TenantID, sale.CustomerID, credit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: intento de auditoría, jamás afecta la operación.
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionCreate,
		Entity:      "sale",
		EntityID:    sale.ID,
	})
	return toSaleResponse(sale), nil
}

// GetSale devuelve una venta del tenant con sus líneas.
func (uc *SalesUseCase) GetSale(ctx context.Context, id authz.Identity, saleID string) (*dto.SaleResponse, error) {
	if id.PrincipalID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	sale, err := uc.saleRepo.GetByID(ctx, id.TenantID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFoundf("venta no encontrada")
	}
	return toSaleResponse(sale), nil
}

// ListSales lista ventas del tenant.
func (uc *SalesUseCase) ListSales(ctx context.Context, id authz.Identity, page dto.PageRequest) ([]dto.SaleResponse, error) {
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	page.DefaultPage()
	sales, err := uc.saleRepo.List(ctx, id.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *toSaleResponse(&sales[i]))
	}
	return out, nil
}
