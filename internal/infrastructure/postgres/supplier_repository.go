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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository (usable con pool o tx).
// Misma mecánica condicional que CustomerRepo, tabla distinta.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, tenant_id, name, phone, email, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.TenantID, supplier.Name, supplier.Phone, supplier.Email,
		supplier.Balance, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("ya existe un proveedor con esos datos")
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor del tenant, o nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, tenant_id, name, phone, email, balance, created_at, updated_at
		FROM suppliers WHERE tenant_id = $1 AND id = $2`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Phone, &s.Email, &s.Balance, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores del tenant con paginación.
func (r *SupplierRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Supplier, error) {
	query := `
		SELECT id, tenant_id, name, phone, email, balance, created_at, updated_at
		FROM suppliers WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Phone, &s.Email, &s.Balance, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza datos de contacto. No toca el saldo.
func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $3, phone = $4, email = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		supplier.TenantID, supplier.ID, supplier.Name, supplier.Phone, supplier.Email, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("proveedor no encontrado")
	}
	return nil
}

// AddBalance suma amount a lo que el negocio le debe al proveedor.
func (r *SupplierRepo) AddBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error {
	query := `
		UPDATE suppliers SET balance = balance + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, amount)
	if err != nil {
		return fmt.Errorf("add supplier balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("proveedor no encontrado")
	}
	return nil
}

// SubBalance resta amount solo si balance >= amount.
func (r *SupplierRepo) SubBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error {
	query := `
		UPDATE suppliers SET balance = balance - $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND balance >= $3`
	tag, err := r.q.Exec(ctx, query, tenantID, id, amount)
	if err != nil {
		return fmt.Errorf("sub supplier balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current decimal.Decimal
		err := r.q.QueryRow(ctx, `SELECT balance FROM suppliers WHERE tenant_id = $1 AND id = $2`, tenantID, id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFoundf("proveedor no encontrado")
		}
		if err != nil {
			return fmt.Errorf("sub supplier balance: releer saldo: %w", err)
		}
		return domain.InsufficientBalance(current.String(), amount.String())
	}
	return nil
}

// SetBalance fija el saldo absoluto (override administrativo auditado).
func (r *SupplierRepo) SetBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.Validationf("el saldo no puede ser negativo")
	}
	query := `
		UPDATE suppliers SET balance = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, amount)
	if err != nil {
		return fmt.Errorf("set supplier balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("proveedor no encontrado")
	}
	return nil
}
