package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio en un conjunto cerrado.
// El mapeo a HTTP (u otro transporte) vive en la capa de interfaces.
type Kind string

const (
	KindUnauthenticated     Kind = "UNAUTHENTICATED"      // sin identidad
	KindNoTenant            Kind = "NO_TENANT"            // identidad sin tenant asociado
	KindForbidden           Kind = "FORBIDDEN"            // el rol no tiene el permiso requerido
	KindNotFound            Kind = "NOT_FOUND"            // no existe o pertenece a otro tenant (indistinguible a propósito)
	KindValidation          Kind = "VALIDATION"           // entrada mal formada o fuera de rango
	KindInsufficientStock   Kind = "INSUFFICIENT_STOCK"   // decremento de stock sin saldo suficiente
	KindInsufficientBalance Kind = "INSUFFICIENT_BALANCE" // pago mayor al saldo del tercero
	KindConflict            Kind = "CONFLICT"             // documento en estado terminal o ya convertido
	KindTransient           Kind = "TRANSIENT"            // fallo de persistencia, reintentable
)

// Error es el error estructurado de dominio: Kind cerrado + mensaje + detalle
// legible por máquina (stock actual, saldo actual, permiso requerido, etc.)
// para que el caller decida reintentar, ajustar entrada o escalar permiso.
type Error struct {
	Kind    Kind
	Message string
	Meta    map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind)
}

// Unwrap expone la causa (solo Transient la tiene).
func (e *Error) Unwrap() error { return e.cause }

// Is permite errors.Is(err, domain.ErrNotFound) comparando por Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Centinelas por Kind, para usar con errors.Is.
var (
	ErrUnauthenticated     = &Error{Kind: KindUnauthenticated, Message: "se requiere autenticación"}
	ErrNoTenant            = &Error{Kind: KindNoTenant, Message: "la identidad no tiene tenant asociado"}
	ErrForbidden           = &Error{Kind: KindForbidden, Message: "acceso denegado"}
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "recurso no encontrado"}
	ErrValidation          = &Error{Kind: KindValidation, Message: "entrada inválida"}
	ErrInsufficientStock   = &Error{Kind: KindInsufficientStock, Message: "stock insuficiente"}
	ErrInsufficientBalance = &Error{Kind: KindInsufficientBalance, Message: "saldo insuficiente"}
	ErrConflict            = &Error{Kind: KindConflict, Message: "conflicto con el estado actual"}
	ErrTransient           = &Error{Kind: KindTransient, Message: "fallo transitorio de persistencia"}
)

// KindOf devuelve el Kind de un error de dominio, o "" si no lo es.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Validationf construye un error de validación con mensaje formateado.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf construye un NotFound. No distinguir "existe en otro tenant":
// ambos casos devuelven el mismo error para no filtrar existencia.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf construye un Conflict (estado terminal, ya convertido, no borrable).
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Forbidden construye un Forbidden indicando la acción requerida.
func Forbidden(action string) *Error {
	return &Error{
		Kind:    KindForbidden,
		Message: "el rol no tiene el permiso requerido",
		Meta:    map[string]any{"required_action": action},
	}
}

// InsufficientStock incluye el stock disponible y el solicitado.
func InsufficientStock(itemID string, available, requested int64) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: "stock insuficiente para el ítem",
		Meta:    map[string]any{"item_id": itemID, "available": available, "requested": requested},
	}
}

// InsufficientBalance incluye el saldo actual y el monto solicitado.
func InsufficientBalance(current, requested string) *Error {
	return &Error{
		Kind:    KindInsufficientBalance,
		Message: "el pago excede el saldo actual",
		Meta:    map[string]any{"current_balance": current, "requested": requested},
	}
}

// Transient envuelve un fallo de la capa de persistencia (reintentable).
func Transient(err error) *Error {
	return &Error{Kind: KindTransient, Message: "fallo de persistencia", cause: err}
}
