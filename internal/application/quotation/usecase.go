package quotation

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

// TxRunner ejecuta una función con los repositorios de documentos atados a
// una transacción (cabecera + líneas snapshot confirman juntas).
type TxRunner interface {
	RunDocuments(ctx context.Context, fn func(
		quotationRepo repository.QuotationRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// QuotationUseCase gobierna el ciclo de vida de cotizaciones: crear,
// cambiar estado y borrar. Las cotizaciones no mueven stock ni saldos;
// su conversión a venta vive en el motor de ventas.
type QuotationUseCase struct {
	txRunner      TxRunner
	quotationRepo repository.QuotationRepository
	itemRepo      repository.ItemRepository
	customerRepo  repository.CustomerRepository
	recorder      audit.Recorder
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(
	txRunner TxRunner,
	quotationRepo repository.QuotationRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	recorder audit.Recorder,
) *QuotationUseCase {
	return &QuotationUseCase{
		txRunner:      txRunner,
		quotationRepo: quotationRepo,
		itemRepo:      itemRepo,
		customerRepo:  customerRepo,
		recorder:      recorder,
	}
}

// Create crea una cotización en DRAFT. Nombre y precio de cada ítem quedan
// congelados como snapshot, desacoplados del Item vivo.
func (uc *QuotationUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if err := authz.Require(id, permission.ActionCreateQuotation); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.Validationf("la cotización requiere al menos una línea")
	}
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
	quote := &entity.Quotation{
		ID:         uuid.New().String(),
		TenantID:   id.TenantID,
		CustomerID: in.CustomerID,
		Status:     entity.QuotationStatusDraft,
		CreatedBy:  id.PrincipalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	total := decimal.Zero
	for _, l := range in.Items {
		if l.Quantity <= 0 {
			return nil, domain.Validationf("la cantidad debe ser positiva")
		}
		if l.Price.IsNegative() {
			return nil, domain.Validationf("el precio no puede ser negativo")
		}
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
		line := entity.QuotationItem{
			ID:          uuid.New().String(),
			QuotationID: quote.ID,
			ItemID:      l.ItemID,
			ItemName:    item.Name,
			Quantity:    l.Quantity,
			Price:       price,
		}
		quote.Items = append(quote.Items, line)
		total = total.Add(line.Subtotal())
	}
	quote.TotalAmount = total

	err := uc.txRunner.RunDocuments(ctx, func(
		quotationRepo repository.QuotationRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		return quotationRepo.Create(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionCreate,
		Entity:      "quotation",
		EntityID:    quote.ID,
	})
	return toQuotationResponse(quote), nil
}

// UpdateStatus mueve la cotización a cualquier estado del enum. Una
// cotización ya convertida es registro histórico y no admite cambios.
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, id authz.Identity, quotationID string, in dto.UpdateQuotationStatusRequest) (*dto.QuotationResponse, error) {
	if err := authz.Require(id, permission.ActionManageQuotation); err != nil {
		return nil, err
	}
	if !entity.ValidQuotationStatus(in.Status) {
		return nil, domain.Validationf("estado desconocido: %s", in.Status)
	}

	quote, err := uc.quotationRepo.GetByID(ctx, id.TenantID, quotationID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.NotFoundf("cotización no encontrada")
	}
	if quote.Converted() {
		return nil, domain.Conflictf("la cotización ya fue convertida en venta")
	}

	if err := uc.quotationRepo.UpdateStatus(ctx, id.TenantID, quote.ID, in.Status); err != nil {
		return nil, err
	}
	quote.Status = in.Status
	quote.UpdatedAt = time.Now()
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionStatusChange,
		Entity:      "quotation",
		EntityID:    quote.ID,
		Detail:      "status=" + in.Status,
	})
	return toQuotationResponse(quote), nil
}

// Delete borra una cotización no convertida, en cualquier estado. Una
// cotización convertida es el respaldo histórico de una venta real y no
// se borra (decisión explícita: el borrado de documentos convertidos
// queda bloqueado).
func (uc *QuotationUseCase) Delete(ctx context.Context, id authz.Identity, quotationID string) error {
	if err := authz.Require(id, permission.ActionManageQuotation); err != nil {
		return err
	}
	quote, err := uc.quotationRepo.GetByID(ctx, id.TenantID, quotationID)
	if err != nil {
		return err
	}
	if quote == nil {
		return domain.NotFoundf("cotización no encontrada")
	}
	if quote.Converted() {
		return domain.Conflictf("una cotización convertida no puede borrarse")
	}
	// Líneas y cabecera se borran juntas o no se borra nada.
	err = uc.txRunner.RunDocuments(ctx, func(
		quotationRepo repository.QuotationRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		return quotationRepo.Delete(ctx, id.TenantID, quote.ID)
	})
	if err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionDelete,
		Entity:      "quotation",
		EntityID:    quote.ID,
	})
	return nil
}

// Get devuelve una cotización del tenant.
func (uc *QuotationUseCase) Get(ctx context.Context, id authz.Identity, quotationID string) (*dto.QuotationResponse, error) {
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	quote, err := uc.quotationRepo.GetByID(ctx, id.TenantID, quotationID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.NotFoundf("cotización no encontrada")
	}
	return toQuotationResponse(quote), nil
}

// List lista cotizaciones del tenant.
func (uc *QuotationUseCase) List(ctx context.Context, id authz.Identity, page dto.PageRequest) ([]dto.QuotationResponse, error) {
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	page.DefaultPage()
	quotes, err := uc.quotationRepo.List(ctx, id.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuotationResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, *toQuotationResponse(&quotes[i]))
	}
	return out, nil
}

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:          q.ID,
		CustomerID:  q.CustomerID,
		Status:      q.Status,
		TotalAmount: q.TotalAmount,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
	if q.ConvertedSaleID != nil {
		resp.ConvertedSaleID = *q.ConvertedSaleID
	}
	for _, it := range q.Items {
		resp.Items = append(resp.Items, dto.QuotationLineResponse{
			ItemID:   it.ItemID,
			ItemName: it.ItemName,
			Quantity: it.Quantity,
			Price:    it.Price,
			Subtotal: it.Subtotal(),
		})
	}
	return resp
}
