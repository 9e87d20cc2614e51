package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
// Los decrementos de stock son escrituras condicionales: la precondición
// quantity >= n viaja en el WHERE y la BD es el árbitro final.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, tenant_id, name, sku, quantity, cost_price, selling_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TenantID, item.Name, item.SKU, item.Quantity,
		item.CostPrice, item.SellingPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("ya existe un ítem con ese SKU")
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem del tenant, o nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Item, error) {
	query := `
		SELECT id, tenant_id, name, sku, quantity, cost_price, selling_price, created_at, updated_at
		FROM items WHERE tenant_id = $1 AND id = $2`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&it.ID, &it.TenantID, &it.Name, &it.SKU, &it.Quantity,
		&it.CostPrice, &it.SellingPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List lista ítems del tenant con paginación.
func (r *ItemRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Item, error) {
	query := `
		SELECT id, tenant_id, name, sku, quantity, cost_price, selling_price, created_at, updated_at
		FROM items WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.TenantID, &it.Name, &it.SKU, &it.Quantity,
			&it.CostPrice, &it.SellingPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update persiste nombre, SKU y precios. No toca quantity.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $3, sku = $4, cost_price = $5, selling_price = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		item.TenantID, item.ID, item.Name, item.SKU, item.CostPrice, item.SellingPrice, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("ya existe un ítem con ese SKU")
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("ítem no encontrado")
	}
	return nil
}

// Increment suma qty al stock del ítem.
func (r *ItemRepo) Increment(ctx context.Context, tenantID, id string, qty int64) error {
	query := `
		UPDATE items SET quantity = quantity + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, qty)
	if err != nil {
		return fmt.Errorf("increment item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("ítem no encontrado")
	}
	return nil
}

// Decrement resta qty solo si quantity >= qty. Cero filas afectadas se
// traduce releyendo la fila: sin fila es NotFound, con fila es
// InsufficientStock con el disponible real.
func (r *ItemRepo) Decrement(ctx context.Context, tenantID, id string, qty int64) error {
	query := `
		UPDATE items SET quantity = quantity - $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND quantity >= $3`
	tag, err := r.q.Exec(ctx, query, tenantID, id, qty)
	if err != nil {
		return fmt.Errorf("decrement item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var available int64
		err := r.q.QueryRow(ctx, `SELECT quantity FROM items WHERE tenant_id = $1 AND id = $2`, tenantID, id).Scan(&available)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFoundf("ítem no encontrado")
		}
		if err != nil {
			return fmt.Errorf("decrement item: releer cantidad: %w", err)
		}
		return domain.InsufficientStock(id, available, qty)
	}
	return nil
}

// SetQuantity fija la cantidad absoluta (override administrativo).
func (r *ItemRepo) SetQuantity(ctx context.Context, tenantID, id string, qty int64) error {
	if qty < 0 {
		return domain.Validationf("la cantidad no puede ser negativa")
	}
	query := `
		UPDATE items SET quantity = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, qty)
	if err != nil {
		return fmt.Errorf("set item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("ítem no encontrado")
	}
	return nil
}

// UpdateCostPrice refresca el costo del ítem (recepción de compras).
func (r *ItemRepo) UpdateCostPrice(ctx context.Context, tenantID, id string, cost decimal.Decimal) error {
	query := `
		UPDATE items SET cost_price = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, cost)
	if err != nil {
		return fmt.Errorf("update item cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("ítem no encontrado")
	}
	return nil
}
