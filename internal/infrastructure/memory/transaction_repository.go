package memory

import (
	"context"
	"sort"

	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
)

// SaleRepo persiste ventas en el Store.
type SaleRepo struct {
	s *Store
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(s *Store) *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sl, ok := r.s.sales[id]
	if !ok || sl.TenantID != tenantID {
		return nil, nil
	}
	cp := sl
	return &cp, nil
}

func (r *SaleRepo) List(_ context.Context, tenantID string, limit, offset int) ([]entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Sale
	for _, sl := range r.s.sales {
		if sl.TenantID == tenantID {
			out = append(out, sl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return pageOf(out, limit, offset), nil
}

func (r *SaleRepo) UpdateHeader(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.sales[sale.ID]
	if !ok || cur.TenantID != sale.TenantID {
		return domain.NotFoundf("venta no encontrada")
	}
	cur.CustomerID = sale.CustomerID
	cur.TotalAmount = sale.TotalAmount
	cur.PaidAmount = sale.PaidAmount
	cur.PaymentType = sale.PaymentType
	cur.UpdatedAt = sale.UpdatedAt
	r.s.sales[sale.ID] = cur
	return nil
}

func (r *SaleRepo) ReplaceItems(_ context.Context, saleID string, items []entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.sales[saleID]
	if !ok {
		return domain.NotFoundf("venta no encontrada")
	}
	cur.Items = cloneSlice(items)
	r.s.sales[saleID] = cur
	return nil
}

func (r *SaleRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.sales[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("venta no encontrada")
	}
	delete(r.s.sales, id)
	return nil
}

// PurchaseRepo persiste compras en el Store.
type PurchaseRepo struct {
	s *Store
}

// NewPurchaseRepository construye el repositorio.
func NewPurchaseRepository(s *Store) *PurchaseRepo { return &PurchaseRepo{s: s} }

func (r *PurchaseRepo) Create(_ context.Context, purchase *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchases[purchase.ID] = *purchase
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.purchases[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *PurchaseRepo) List(_ context.Context, tenantID string, limit, offset int) ([]entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Purchase
	for _, p := range r.s.purchases {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return pageOf(out, limit, offset), nil
}

func (r *PurchaseRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.purchases[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("compra no encontrada")
	}
	delete(r.s.purchases, id)
	return nil
}
