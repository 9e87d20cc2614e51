package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
)

// Caso 1: identidad completa con permiso → pasa.
func TestRequire_IdentidadConPermiso(t *testing.T) {
	id := authz.Identity{PrincipalID: "u1", TenantID: "t1", Role: permission.RoleCashier}
	assert.NoError(t, authz.Require(id, permission.ActionCreateSales),
		"cashier debe poder crear ventas")
}

// Caso 2: sin principal → UNAUTHENTICATED, antes que cualquier otra verificación.
func TestRequire_SinIdentidad(t *testing.T) {
	id := authz.Identity{TenantID: "t1", Role: permission.RoleOwner}
	err := authz.Require(id, permission.ActionCreateSales)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated,
		"sin principal el rechazo debe ser UNAUTHENTICATED")
}

// Caso 3: identidad sin tenant → NO_TENANT.
func TestRequire_SinTenant(t *testing.T) {
	id := authz.Identity{PrincipalID: "u1", Role: permission.RoleOwner}
	err := authz.Require(id, permission.ActionCreateSales)
	require.Error(t, err)
	assert.Equal(t, domain.KindNoTenant, domain.KindOf(err),
		"identidad sin tenant debe rechazarse con NO_TENANT")
}

// Caso 4: rol sin el permiso → FORBIDDEN con la acción requerida en el detalle.
func TestRequire_RolSinPermiso(t *testing.T) {
	id := authz.Identity{PrincipalID: "u1", TenantID: "t1", Role: permission.RoleStaff}
	err := authz.Require(id, permission.ActionVoidSales)
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "void_sales", derr.Meta["required_action"],
		"el detalle debe indicar la acción que faltó")
}
