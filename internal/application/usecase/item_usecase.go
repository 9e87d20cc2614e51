package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para ítems de inventario. Quantity solo se
// muta vía el ledger de stock (ventas, compras, ajustes), nunca por Update.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un ítem nuevo. La cantidad inicial puede ser positiva
// (inventario de apertura) pero nunca negativa.
func (uc *ItemUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := authz.Require(id, permission.ActionManageItems); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.Validationf("el nombre del ítem es obligatorio")
	}
	if in.Quantity < 0 {
		return nil, domain.Validationf("la cantidad inicial no puede ser negativa")
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.Validationf("los precios no pueden ser negativos")
	}
	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		TenantID:     id.TenantID,
		Name:         in.Name,
		SKU:          in.SKU,
		Quantity:     in.Quantity,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un ítem del tenant del caller.
func (uc *ItemUseCase) GetByID(ctx context.Context, id authz.Identity, itemID string) (*dto.ItemResponse, error) {
	if err := authz.Require(id, permission.ActionManageItems); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id.TenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFoundf("ítem no encontrado")
	}
	return toItemResponse(item), nil
}

// List lista los ítems del tenant con paginación.
func (uc *ItemUseCase) List(ctx context.Context, id authz.Identity, page dto.PageRequest) ([]dto.ItemResponse, error) {
	if err := authz.Require(id, permission.ActionManageItems); err != nil {
		return nil, err
	}
	page.DefaultPage()
	items, err := uc.repo.List(ctx, id.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *toItemResponse(&items[i]))
	}
	return out, nil
}

// Update actualiza nombre, SKU y precios. No permite modificar Quantity:
// eso es del ledger de stock.
func (uc *ItemUseCase) Update(ctx context.Context, id authz.Identity, itemID string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := authz.Require(id, permission.ActionManageItems); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id.TenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFoundf("ítem no encontrado")
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.Validationf("los precios no pueden ser negativos")
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if in.SKU != "" {
		item.SKU = in.SKU
	}
	item.CostPrice = in.CostPrice
	item.SellingPrice = in.SellingPrice
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		SKU:          it.SKU,
		Quantity:     it.Quantity,
		CostPrice:    it.CostPrice,
		SellingPrice: it.SellingPrice,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}
