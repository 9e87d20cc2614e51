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

// CustomerUseCase casos de uso CRUD para clientes. El saldo nunca se toca
// aquí: solo vía ventas a crédito, pagos y el override auditado.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente con saldo cero.
func (uc *CustomerUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if err := authz.Require(id, permission.ActionManageCounterparties); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.Validationf("el nombre del cliente es obligatorio")
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		TenantID:  id.TenantID,
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente del tenant del caller.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id authz.Identity, customerID string) (*dto.CounterpartyResponse, error) {
	if err := authz.Require(id, permission.ActionManageCounterparties); err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByID(ctx, id.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFoundf("cliente no encontrado")
	}
	return toCustomerResponse(customer), nil
}

// List lista los clientes del tenant con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, id authz.Identity, page dto.PageRequest) ([]dto.CounterpartyResponse, error) {
	if err := authz.Require(id, permission.ActionManageCounterparties); err != nil {
		return nil, err
	}
	page.DefaultPage()
	customers, err := uc.repo.List(ctx, id.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CounterpartyResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *toCustomerResponse(&customers[i]))
	}
	return out, nil
}

// Update actualiza datos de contacto. No toca el saldo.
func (uc *CustomerUseCase) Update(ctx context.Context, id authz.Identity, customerID string, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if err := authz.Require(id, permission.ActionManageCounterparties); err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByID(ctx, id.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFoundf("cliente no encontrado")
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func toCustomerResponse(c *entity.Customer) *dto.CounterpartyResponse {
	if c == nil {
		return nil
	}
	return &dto.CounterpartyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
