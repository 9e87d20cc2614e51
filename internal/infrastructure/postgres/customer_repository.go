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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
// El saldo se muta con escrituras condicionales: la precondición
// balance >= monto viaja en el WHERE.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, tenant_id, name, phone, email, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.TenantID, customer.Name, customer.Phone, customer.Email,
		customer.Balance, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("ya existe un cliente con esos datos")
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del tenant, o nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	query := `
		SELECT id, tenant_id, name, phone, email, balance, created_at, updated_at
		FROM customers WHERE tenant_id = $1 AND id = $2`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Email, &c.Balance, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista clientes del tenant con paginación.
func (r *CustomerRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Customer, error) {
	query := `
		SELECT id, tenant_id, name, phone, email, balance, created_at, updated_at
		FROM customers WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Email, &c.Balance, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza datos de contacto. No toca el saldo.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $3, phone = $4, email = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		customer.TenantID, customer.ID, customer.Name, customer.Phone, customer.Email, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("cliente no encontrado")
	}
	return nil
}

// AddBalance suma amount al saldo (crédito otorgado).
func (r *CustomerRepo) AddBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error {
	query := `
		UPDATE customers SET balance = balance + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, amount)
	if err != nil {
		return fmt.Errorf("add customer balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("cliente no encontrado")
	}
	return nil
}

// SubBalance resta amount solo si balance >= amount. Cero filas afectadas
// se traduce releyendo la fila: sin fila es NotFound, con fila es
// InsufficientBalance con el saldo real.
func (r *CustomerRepo) SubBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error {
	query := `
		UPDATE customers SET balance = balance - $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND balance >= $3`
	tag, err := r.q.Exec(ctx, query, tenantID, id, amount)
	if err != nil {
		return fmt.Errorf("sub customer balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current decimal.Decimal
		err := r.q.QueryRow(ctx, `SELECT balance FROM customers WHERE tenant_id = $1 AND id = $2`, tenantID, id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFoundf("cliente no encontrado")
		}
		if err != nil {
			return fmt.Errorf("sub customer balance: releer saldo: %w", err)
		}
		return domain.InsufficientBalance(current.String(), amount.String())
	}
	return nil
}

// SetBalance fija el saldo absoluto (override administrativo auditado).
func (r *CustomerRepo) SetBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.Validationf("el saldo no puede ser negativo")
	}
	query := `
		UPDATE customers SET balance = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, amount)
	if err != nil {
		return fmt.Errorf("set customer balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("cliente no encontrado")
	}
	return nil
}
