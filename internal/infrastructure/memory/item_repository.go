package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementa el ledger de stock sobre el Store. Los decrementos
// verifican la precondición quantity >= qty bajo el mismo lock, igual que
// la escritura condicional de Postgres.
type ItemRepo struct {
	s *Store
}

// NewItemRepository construye el repositorio.
func NewItemRepository(s *Store) *ItemRepo { return &ItemRepo{s: s} }

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.TenantID == item.TenantID && it.SKU == item.SKU && it.SKU != "" {
			return domain.Conflictf("ya existe un ítem con ese SKU")
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok || it.TenantID != tenantID {
		return nil, nil
	}
	cp := it
	return &cp, nil
}

func (r *ItemRepo) List(_ context.Context, tenantID string, limit, offset int) ([]entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Item
	for _, it := range r.s.items {
		if it.TenantID == tenantID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return pageOf(out, limit, offset), nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[item.ID]
	if !ok || cur.TenantID != item.TenantID {
		return domain.NotFoundf("ítem no encontrado")
	}
	cur.Name = item.Name
	cur.SKU = item.SKU
	cur.CostPrice = item.CostPrice
	cur.SellingPrice = item.SellingPrice
	cur.UpdatedAt = time.Now()
	r.s.items[item.ID] = cur
	return nil
}

func (r *ItemRepo) Increment(_ context.Context, tenantID, id string, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("ítem no encontrado")
	}
	cur.Quantity += qty
	cur.UpdatedAt = time.Now()
	r.s.items[id] = cur
	return nil
}

func (r *ItemRepo) Decrement(_ context.Context, tenantID, id string, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("ítem no encontrado")
	}
	if cur.Quantity < qty {
		return domain.InsufficientStock(id, cur.Quantity, qty)
	}
	cur.Quantity -= qty
	cur.UpdatedAt = time.Now()
	r.s.items[id] = cur
	return nil
}

func (r *ItemRepo) SetQuantity(_ context.Context, tenantID, id string, qty int64) error {
	if qty < 0 {
		return domain.Validationf("la cantidad no puede ser negativa")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("ítem no encontrado")
	}
	cur.Quantity = qty
	cur.UpdatedAt = time.Now()
	r.s.items[id] = cur
	return nil
}

func (r *ItemRepo) UpdateCostPrice(_ context.Context, tenantID, id string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("ítem no encontrado")
	}
	cur.CostPrice = cost
	cur.UpdatedAt = time.Now()
	r.s.items[id] = cur
	return nil
}

// pageOf aplica limit/offset a un slice ya filtrado.
func pageOf[V any](s []V, limit, offset int) []V {
	if offset >= len(s) {
		return nil
	}
	s = s[offset:]
	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}
	return s
}
