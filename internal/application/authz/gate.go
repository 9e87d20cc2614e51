package authz

import (
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
)

// Identity es lo que el colaborador de autenticación entrega por cada
// llamada: principal, tenant y rol. El core no valida tokens; recibe
// la identidad ya resuelta.
type Identity struct {
	PrincipalID string
	TenantID    string
	Role        permission.Role
}

// Require es la puerta de autorización: verifica identidad, tenant y
// permiso antes de que corra cualquier lógica de dominio. Distingue
// tres rechazos: sin identidad, identidad sin tenant, y rol sin permiso.
func Require(id Identity, action permission.Action) error {
	if id.PrincipalID == "" {
		return domain.ErrUnauthenticated
	}
	if id.TenantID == "" {
		return domain.ErrNoTenant
	}
	if !permission.Allowed(id.Role, action) {
		return domain.Forbidden(string(action))
	}
	return nil
}
