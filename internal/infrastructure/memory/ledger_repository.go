package memory

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var (
	_ repository.CustomerPaymentRepository = (*CustomerPaymentRepo)(nil)
	_ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)
	_ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)
	_ repository.TenantRepository          = (*TenantRepo)(nil)
	_ repository.UserRepository            = (*UserRepo)(nil)
)

// CustomerPaymentRepo persiste abonos de clientes en el Store.
type CustomerPaymentRepo struct {
	s *Store
}

// NewCustomerPaymentRepository construye el repositorio.
func NewCustomerPaymentRepository(s *Store) *CustomerPaymentRepo {
	return &CustomerPaymentRepo{s: s}
}

func (r *CustomerPaymentRepo) Create(_ context.Context, p *entity.CustomerPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customerPayments = append(r.s.customerPayments, *p)
	return nil
}

func (r *CustomerPaymentRepo) ListByCustomer(_ context.Context, tenantID, customerID string, limit, offset int) ([]entity.CustomerPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// Del más reciente al más antiguo, como la versión SQL.
	var out []entity.CustomerPayment
	for i := len(r.s.customerPayments) - 1; i >= 0; i-- {
		p := r.s.customerPayments[i]
		if p.TenantID == tenantID && p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return pageOf(out, limit, offset), nil
}

// SupplierPaymentRepo persiste pagos a proveedores en el Store.
type SupplierPaymentRepo struct {
	s *Store
}

// NewSupplierPaymentRepository construye el repositorio.
func NewSupplierPaymentRepository(s *Store) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{s: s}
}

func (r *SupplierPaymentRepo) Create(_ context.Context, p *entity.SupplierPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.supplierPayments = append(r.s.supplierPayments, *p)
	return nil
}

func (r *SupplierPaymentRepo) ListBySupplier(_ context.Context, tenantID, supplierID string, limit, offset int) ([]entity.SupplierPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.SupplierPayment
	for i := len(r.s.supplierPayments) - 1; i >= 0; i-- {
		p := r.s.supplierPayments[i]
		if p.TenantID == tenantID && p.SupplierID == supplierID {
			out = append(out, p)
		}
	}
	return pageOf(out, limit, offset), nil
}

// StockAdjustmentRepo persiste ajustes manuales de stock en el Store.
type StockAdjustmentRepo struct {
	s *Store
}

// NewStockAdjustmentRepository construye el repositorio.
func NewStockAdjustmentRepository(s *Store) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{s: s}
}

func (r *StockAdjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.adjustments = append(r.s.adjustments, *a)
	return nil
}

func (r *StockAdjustmentRepo) ListByItem(_ context.Context, tenantID, itemID string, limit, offset int) ([]entity.StockAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.StockAdjustment
	for i := len(r.s.adjustments) - 1; i >= 0; i-- {
		a := r.s.adjustments[i]
		if a.TenantID == tenantID && a.ItemID == itemID {
			out = append(out, a)
		}
	}
	return pageOf(out, limit, offset), nil
}

// TenantRepo persiste tenants en el Store.
type TenantRepo struct {
	s *Store
}

// NewTenantRepository construye el repositorio.
func NewTenantRepository(s *Store) *TenantRepo { return &TenantRepo{s: s} }

func (r *TenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tenants[t.ID] = *t
	return nil
}

func (r *TenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

// UserRepo persiste usuarios en el Store.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.users {
		if ex.Email == u.Email {
			return domain.Conflictf("el email ya está registrado")
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}
