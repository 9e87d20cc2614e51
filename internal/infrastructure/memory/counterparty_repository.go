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

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CustomerRepo implementa el ledger de saldos de clientes sobre el Store.
// SubBalance verifica la precondición balance >= amount bajo el lock.
type CustomerRepo struct {
	s *Store
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(s *Store) *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (r *CustomerRepo) List(_ context.Context, tenantID string, limit, offset int) ([]entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Customer
	for _, c := range r.s.customers {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return pageOf(out, limit, offset), nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[c.ID]
	if !ok || cur.TenantID != c.TenantID {
		return domain.NotFoundf("cliente no encontrado")
	}
	cur.Name = c.Name
	cur.Phone = c.Phone
	cur.Email = c.Email
	cur.UpdatedAt = time.Now()
	r.s.customers[c.ID] = cur
	return nil
}

func (r *CustomerRepo) AddBalance(_ context.Context, tenantID, id string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("cliente no encontrado")
	}
	cur.Balance = cur.Balance.Add(amount)
	cur.UpdatedAt = time.Now()
	r.s.customers[id] = cur
	return nil
}

func (r *CustomerRepo) SubBalance(_ context.Context, tenantID, id string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("cliente no encontrado")
	}
	if cur.Balance.LessThan(amount) {
		return domain.InsufficientBalance(cur.Balance.String(), amount.String())
	}
	cur.Balance = cur.Balance.Sub(amount)
	cur.UpdatedAt = time.Now()
	r.s.customers[id] = cur
	return nil
}

func (r *CustomerRepo) SetBalance(_ context.Context, tenantID, id string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.Validationf("el saldo no puede ser negativo")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("cliente no encontrado")
	}
	cur.Balance = amount
	cur.UpdatedAt = time.Now()
	r.s.customers[id] = cur
	return nil
}

// SupplierRepo implementa el ledger de saldos de proveedores sobre el Store.
type SupplierRepo struct {
	s *Store
}

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(s *Store) *SupplierRepo { return &SupplierRepo{s: s} }

func (r *SupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok || sp.TenantID != tenantID {
		return nil, nil
	}
	cp := sp
	return &cp, nil
}

func (r *SupplierRepo) List(_ context.Context, tenantID string, limit, offset int) ([]entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Supplier
	for _, sp := range r.s.suppliers {
		if sp.TenantID == tenantID {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return pageOf(out, limit, offset), nil
}

func (r *SupplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.suppliers[sp.ID]
	if !ok || cur.TenantID != sp.TenantID {
		return domain.NotFoundf("proveedor no encontrado")
	}
	cur.Name = sp.Name
	cur.Phone = sp.Phone
	cur.Email = sp.Email
	cur.UpdatedAt = time.Now()
	r.s.suppliers[sp.ID] = cur
	return nil
}

func (r *SupplierRepo) AddBalance(_ context.Context, tenantID, id string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.suppliers[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("proveedor no encontrado")
	}
	cur.Balance = cur.Balance.Add(amount)
	cur.UpdatedAt = time.Now()
	r.s.suppliers[id] = cur
	return nil
}

func (r *SupplierRepo) SubBalance(_ context.Context, tenantID, id string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.suppliers[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("proveedor no encontrado")
	}
	if cur.Balance.LessThan(amount) {
		return domain.InsufficientBalance(cur.Balance.String(), amount.String())
	}
	cur.Balance = cur.Balance.Sub(amount)
	cur.UpdatedAt = time.Now()
	r.s.suppliers[id] = cur
	return nil
}

func (r *SupplierRepo) SetBalance(_ context.Context, tenantID, id string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.Validationf("el saldo no puede ser negativo")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.suppliers[id]
	if !ok || cur.TenantID != tenantID {
		return domain.NotFoundf("proveedor no encontrado")
	}
	cur.Balance = amount
	cur.UpdatedAt = time.Now()
	r.s.suppliers[id] = cur
	return nil
}
