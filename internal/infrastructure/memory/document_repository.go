package memory

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var (
	_ repository.QuotationRepository     = (*QuotationRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

// QuotationRepo persiste cotizaciones en el Store. MarkConverted aplica la
// misma puerta condicional que Postgres bajo el lock: un solo ganador.
type QuotationRepo struct {
	s *Store
}

// NewQuotationRepository construye el repositorio.
func NewQuotationRepository(s *Store) *QuotationRepo { return &QuotationRepo{s: s} }

func (r *QuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quotations[q.ID] = *q
	return nil
}

func (r *QuotationRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Quotation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotations[id]
	if !ok || q.TenantID != tenantID {
		return nil, nil
	}
	cp := q
	return &cp, nil
}

func (r *QuotationRepo) List(_ context.Context, tenantID string, limit, offset int) ([]entity.Quotation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Quotation
	for _, q := range r.s.quotations {
		if q.TenantID == tenantID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return pageOf(out, limit, offset), nil
}

func (r *QuotationRepo) UpdateStatus(_ context.Context, tenantID, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.quotations[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("cotización no encontrada")
	}
	// Misma condición que el UPDATE de Postgres: una cotización convertida
	// no cambia de estado aunque la escritura llegue después de la conversión.
	if cur.ConvertedSaleID != nil {
		return domain.Conflictf("la cotización no existe o ya fue convertida")
	}
	cur.Status = status
	cur.UpdatedAt = time.Now()
	r.s.quotations[id] = cur
	return nil
}

func (r *QuotationRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.quotations[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("cotización no encontrada")
	}
	delete(r.s.quotations, id)
	return nil
}

func (r *QuotationRepo) MarkConverted(_ context.Context, tenantID, id, saleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.quotations[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("cotización no encontrada")
	}
	if cur.ConvertedSaleID != nil ||
		cur.Status == entity.QuotationStatusRejected || cur.Status == entity.QuotationStatusExpired {
		return domain.Conflictf("la cotización ya fue convertida o su estado no lo permite")
	}
	cur.Status = entity.QuotationStatusAccepted
	cur.ConvertedSaleID = &saleID
	cur.UpdatedAt = time.Now()
	r.s.quotations[id] = cur
	return nil
}

// PurchaseOrderRepo persiste órdenes de compra en el Store.
type PurchaseOrderRepo struct {
	s *Store
}

// NewPurchaseOrderRepository construye el repositorio.
func NewPurchaseOrderRepository(s *Store) *PurchaseOrderRepo { return &PurchaseOrderRepo{s: s} }

func (r *PurchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID] = *o
	return nil
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, tenantID, id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	cp := o
	return &cp, nil
}

func (r *PurchaseOrderRepo) List(_ context.Context, tenantID string, limit, offset int) ([]entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.PurchaseOrder
	for _, o := range r.s.orders {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return pageOf(out, limit, offset), nil
}

func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, tenantID, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("orden no encontrada")
	}
	if cur.ConvertedPurchaseID != nil {
		return domain.Conflictf("la orden no existe o ya fue recibida")
	}
	cur.Status = status
	cur.UpdatedAt = time.Now()
	r.s.orders[id] = cur
	return nil
}

func (r *PurchaseOrderRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("orden no encontrada")
	}
	delete(r.s.orders, id)
	return nil
}

func (r *PurchaseOrderRepo) MarkReceived(_ context.Context, tenantID, id, purchaseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("orden no encontrada")
	}
	if cur.ConvertedPurchaseID != nil ||
		(cur.Status != entity.PurchaseOrderStatusDraft && cur.Status != entity.PurchaseOrderStatusSent) {
		return domain.Conflictf("la orden ya fue recibida o su estado no lo permite")
	}
	cur.Status = entity.PurchaseOrderStatusReceived
	cur.ConvertedPurchaseID = &purchaseID
	cur.UpdatedAt = time.Now()
	r.s.orders[id] = cur
	return nil
}
