package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función con los repositorios de ajustes y stock
// atados a una transacción: el registro del ajuste y el delta del ítem
// confirman juntos o ninguno.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		adjustmentRepo repository.StockAdjustmentRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// StockUseCase aplica ajustes manuales de stock y el override de cantidad
// absoluta. Todo ajuste exige razón; no hay efecto en saldos.
type StockUseCase struct {
	txRunner       TxRunner
	itemRepo       repository.ItemRepository
	adjustmentRepo repository.StockAdjustmentRepository
	recorder       audit.Recorder
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
	recorder audit.Recorder,
) *StockUseCase {
	return &StockUseCase{
		txRunner:       txRunner,
		itemRepo:       itemRepo,
		adjustmentRepo: adjustmentRepo,
		recorder:       recorder,
	}
}

// CreateAdjustment valida cantidad positiva, razón no vacía y, para
// DECREASE, que la cantidad no exceda el stock actual; luego crea el
// registro y aplica el delta con signo en una transacción.
func (uc *StockUseCase) CreateAdjustment(ctx context.Context, id authz.Identity, in dto.CreateStockAdjustmentRequest) (*dto.StockAdjustmentResponse, error) {
	if err := authz.Require(id, permission.ActionAdjustStock); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.Validationf("la cantidad debe ser positiva")
	}
	if in.Reason == "" {
		return nil, domain.Validationf("el ajuste exige una razón")
	}
	if in.Type != entity.AdjustmentTypeIncrease && in.Type != entity.AdjustmentTypeDecrease {
		return nil, domain.Validationf("tipo de ajuste desconocido: %s", in.Type)
	}

	item, err := uc.itemRepo.GetByID(ctx, id.TenantID, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFoundf("ítem no encontrado")
	}
	if in.Type == entity.AdjustmentTypeDecrease && in.Quantity > item.Quantity {
		return nil, domain.InsufficientStock(in.ItemID, item.Quantity, in.Quantity)
	}

	adjustment := &entity.StockAdjustment{
		ID:        uuid.New().String(),
		TenantID:  id.TenantID,
		ItemID:    in.ItemID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		CreatedBy: id.PrincipalID,
		CreatedAt: time.Now(),
	}
	err = uc.txRunner.RunStock(ctx, func(
		adjustmentRepo repository.StockAdjustmentRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := adjustmentRepo.Create(ctx, adjustment); err != nil {
			return err
		}
		if in.Type == entity.AdjustmentTypeIncrease {
			return itemRepo.Increment(ctx, id.TenantID, in.ItemID, in.Quantity)
		}
		return itemRepo.Decrement(ctx, id.TenantID, in.ItemID, in.Quantity)
	})
	if err != nil {
		return nil, err
	}

	newQty := item.Quantity + in.Quantity
	if in.Type == entity.AdjustmentTypeDecrease {
		newQty = item.Quantity - in.Quantity
	}
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionAdjustStock,
		Entity:      "stock_adjustment",
		EntityID:    adjustment.ID,
		Detail:      "reason=" + in.Reason,
	})
	return &dto.StockAdjustmentResponse{
		ID:          adjustment.ID,
		ItemID:      adjustment.ItemID,
		Type:        adjustment.Type,
		Quantity:    adjustment.Quantity,
		Reason:      adjustment.Reason,
		NewQuantity: newQty,
		CreatedAt:   adjustment.CreatedAt,
	}, nil
}

// ListAdjustments devuelve el historial de ajustes de un ítem, del más
// reciente al más antiguo.
func (uc *StockUseCase) ListAdjustments(ctx context.Context, id authz.Identity, itemID string, limit, offset int) ([]dto.StockAdjustmentHistoryItem, error) {
	if err := authz.Require(id, permission.ActionAdjustStock); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(ctx, id.TenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFoundf("ítem no encontrado")
	}
	adjustments, err := uc.adjustmentRepo.ListByItem(ctx, id.TenantID, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAdjustmentHistoryItem, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, dto.StockAdjustmentHistoryItem{
			ID:        a.ID,
			ItemID:    a.ItemID,
			Type:      a.Type,
			Quantity:  a.Quantity,
			Reason:    a.Reason,
			CreatedBy: a.CreatedBy,
			CreatedAt: a.CreatedAt,
		})
	}
	return out, nil
}

// SetQuantity fija la cantidad absoluta de un ítem. Override administrativo:
// salta la precondición de delta pero rechaza negativos, exige razón y se
// audita con acción propia, distinta del ajuste ordinario.
func (uc *StockUseCase) SetQuantity(ctx context.Context, id authz.Identity, in dto.SetQuantityRequest) error {
	if err := authz.Require(id, permission.ActionAdjustStock); err != nil {
		return err
	}
	if in.Reason == "" {
		return domain.Validationf("el override de cantidad exige una razón")
	}
	if in.Quantity < 0 {
		return domain.Validationf("la cantidad no puede ser negativa")
	}
	item, err := uc.itemRepo.GetByID(ctx, id.TenantID, in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.NotFoundf("ítem no encontrado")
	}
	if err := uc.itemRepo.SetQuantity(ctx, id.TenantID, in.ItemID, in.Quantity); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionSetQuantity,
		Entity:      "item",
		EntityID:    in.ItemID,
		Detail:      "reason=" + in.Reason,
	})
	return nil
}
