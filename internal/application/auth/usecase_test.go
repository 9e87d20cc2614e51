package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/application/auth"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
	pkgjwt "github.com/tu-usuario/retail-ledger/pkg/jwt"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newUseCase(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	uc := auth.NewAuthUseCase(
		memory.NewUserRepository(st),
		memory.NewTenantRepository(st),
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "retail-ledger-test"},
	)
	return uc, st
}

func mustRegisterTenant(t *testing.T, uc *auth.AuthUseCase) *dto.UserResponse {
	t.Helper()
	owner, err := uc.RegisterTenant(context.Background(), dto.RegisterTenantRequest{
		TenantName: "Tienda Doña Rosa",
		Email:      "rosa@example.com",
		Password:   "secreta123",
	})
	require.NoError(t, err)
	return owner
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterTenant
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el alta de tenant crea el usuario fundador como Owner activo.
func TestRegisterTenant_CreaOwner(t *testing.T) {
	uc, _ := newUseCase(t)
	owner := mustRegisterTenant(t, uc)

	assert.Equal(t, string(permission.RoleOwner), owner.Role)
	assert.Equal(t, "active", owner.Status)
	assert.NotEmpty(t, owner.TenantID, "el owner debe quedar atado a su tenant")
	assert.Equal(t, "rosa@example.com", owner.Name, "sin nombre explícito se usa el email")
}

// Caso 2: un email repetido se rechaza con Conflict.
func TestRegisterTenant_EmailDuplicado(t *testing.T) {
	uc, _ := newUseCase(t)
	mustRegisterTenant(t, uc)

	_, err := uc.RegisterTenant(context.Background(), dto.RegisterTenantRequest{
		TenantName: "Otra tienda",
		Email:      "rosa@example.com",
		Password:   "otra456",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el Owner da de alta un cajero dentro de su propio tenant.
func TestRegisterUser_OwnerCreaCajero(t *testing.T) {
	uc, _ := newUseCase(t)
	owner := mustRegisterTenant(t, uc)

	ownerID := authz.Identity{
		PrincipalID: owner.ID, TenantID: owner.TenantID, Role: permission.RoleOwner,
	}
	user, err := uc.RegisterUser(context.Background(), ownerID, dto.RegisterUserRequest{
		Name:     "Juan Caja",
		Email:    "juan@example.com",
		Password: "clave789",
		Role:     "cashier",
	})
	require.NoError(t, err)
	assert.Equal(t, "cashier", user.Role)
	assert.Equal(t, owner.TenantID, user.TenantID, "el usuario nace en el tenant del caller")
}

// Caso 2: nadie que no sea Owner puede dar de alta usuarios.
func TestRegisterUser_SoloOwner(t *testing.T) {
	uc, _ := newUseCase(t)
	owner := mustRegisterTenant(t, uc)

	managerID := authz.Identity{
		PrincipalID: owner.ID, TenantID: owner.TenantID, Role: permission.RoleStoreManager,
	}
	_, err := uc.RegisterUser(context.Background(), managerID, dto.RegisterUserRequest{
		Email: "x@example.com", Password: "clave789", Role: "cashier",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

// Caso 3: un rol fuera del conjunto cerrado se rechaza.
func TestRegisterUser_RolDesconocido(t *testing.T) {
	uc, _ := newUseCase(t)
	owner := mustRegisterTenant(t, uc)

	ownerID := authz.Identity{
		PrincipalID: owner.ID, TenantID: owner.TenantID, Role: permission.RoleOwner,
	}
	_, err := uc.RegisterUser(context.Background(), ownerID, dto.RegisterUserRequest{
		Email: "x@example.com", Password: "clave789", Role: "superadmin",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: credenciales correctas → token con principal, tenant y rol.
func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc, _ := newUseCase(t)
	owner := mustRegisterTenant(t, uc)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "rosa@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, tenantID, role, err := pkgjwt.Parse(testJWTSecret, resp.Token)
	require.NoError(t, err, "el token emitido debe ser parseable con el mismo secreto")
	assert.Equal(t, owner.ID, userID)
	assert.Equal(t, owner.TenantID, tenantID)
	assert.Equal(t, string(permission.RoleOwner), role)
}

// Caso 2: password incorrecta y email inexistente devuelven el mismo
// rechazo UNAUTHENTICATED, sin filtrar cuál de los dos falló.
func TestLogin_CredencialesIncorrectas(t *testing.T) {
	uc, _ := newUseCase(t)
	mustRegisterTenant(t, uc)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "rosa@example.com", Password: "equivocada",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@example.com", Password: "secreta123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
