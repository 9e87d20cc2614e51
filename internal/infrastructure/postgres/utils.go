package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// nullify convierte "" en NULL para columnas FK opcionales.
func nullify(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// deref devuelve "" si el puntero es nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
