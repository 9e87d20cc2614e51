package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores. Saldo aparte, igual
// que en clientes: solo compras a crédito, pagos y override.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor con saldo cero.
func (uc *SupplierUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if err := authz.Require(id, permission.ActionManageCounterparties); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.Validationf("el nombre del proveedor es obligatorio")
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		TenantID:  id.TenantID,
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor del tenant del caller.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id authz.Identity, supplierID string) (*dto.CounterpartyResponse, error) {
	if err := authz.Require(id, permission.ActionManageCounterparties); err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByID(ctx, id.TenantID, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor no encontrado")
	}
	return toSupplierResponse(supplier), nil
}

// List lista los proveedores del tenant con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, id authz.Identity, page dto.PageRequest) ([]dto.CounterpartyResponse, error) {
	if err := authz.Require(id, permission.ActionManageCounterparties); err != nil {
		return nil, err
	}
	page.DefaultPage()
	suppliers, err := uc.repo.List(ctx, id.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CounterpartyResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *toSupplierResponse(&suppliers[i]))
	}
	return out, nil
}

// Update actualiza datos de contacto. No toca el saldo.
func (uc *SupplierUseCase) Update(ctx context.Context, id authz.Identity, supplierID string, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if err := authz.Require(id, permission.ActionManageCounterparties); err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByID(ctx, id.TenantID, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor no encontrado")
	}
	if in.Name != "" {
		supplier.Name = in.Name
	}
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

func toSupplierResponse(s *entity.Supplier) *dto.CounterpartyResponse {
	if s == nil {
		return nil
	}
	return &dto.CounterpartyResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Email:     s.Email,
		Balance:   s.Balance,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
