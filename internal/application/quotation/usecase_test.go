package quotation_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/quotation"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

const (
	testTenantID   = "00000000-0000-0000-0000-0000000000a1"
	testUserID     = "00000000-0000-0000-0000-0000000000b1"
	testItemID     = "00000000-0000-0000-0000-0000000000c1"
	testCustomerID = "00000000-0000-0000-0000-0000000000d1"
)

func identityFor(role permission.Role) authz.Identity {
	return authz.Identity{PrincipalID: testUserID, TenantID: testTenantID, Role: role}
}

type fixture struct {
	store *memory.Store
	uc    *quotation.QuotationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	st.PutItem(entity.Item{
		ID: testItemID, TenantID: testTenantID,
		Name: "Café molido 500g", SKU: "CAFE-500",
		Quantity: 2, SellingPrice: decimal.NewFromInt(20),
	})
	st.PutCustomer(entity.Customer{
		ID: testCustomerID, TenantID: testTenantID,
		Name: "María Pérez", Balance: decimal.Zero,
	})
	uc := quotation.NewQuotationUseCase(
		memory.NewTxRunner(st),
		memory.NewQuotationRepository(st),
		memory.NewItemRepository(st),
		memory.NewCustomerRepository(st),
		audit.Noop{},
	)
	return &fixture{store: st, uc: uc}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: la cotización nace en DRAFT, congela nombre y precio del ítem y
// no exige stock: cotizar 50 unidades con stock 2 es válido.
func TestCreate_SnapshotSinPrecondicionDeStock(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Create(context.Background(), identityFor(permission.RoleStaff), dto.CreateQuotationRequest{
		CustomerID: testCustomerID,
		Items: []dto.QuotationLineRequest{
			{ItemID: testItemID, Quantity: 50},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.QuotationStatusDraft, resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1000)), "total = 50 × 20")
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Café molido 500g", resp.Items[0].ItemName, "el nombre queda congelado")

	it, _ := f.store.Item(testItemID)
	assert.EqualValues(t, 2, it.Quantity, "cotizar no mueve stock")
}

// Caso 2: un precio explícito en la línea pisa el precio vivo del ítem.
func TestCreate_PrecioExplicitoPisaElVivo(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Create(context.Background(), identityFor(permission.RoleCashier), dto.CreateQuotationRequest{
		Items: []dto.QuotationLineRequest{
			{ItemID: testItemID, Quantity: 3, Price: decimal.NewFromInt(18)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(54)), "total = 3 × 18 pactado")
}

// Caso 3: líneas inválidas → VALIDATION.
func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), identityFor(permission.RoleOwner), dto.CreateQuotationRequest{})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "sin líneas")

	_, err = f.uc.Create(context.Background(), identityFor(permission.RoleOwner), dto.CreateQuotationRequest{
		Items: []dto.QuotationLineRequest{{ItemID: testItemID, Quantity: 0}},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "cantidad cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus / Delete
// ──────────────────────────────────────────────────────────────────────────────

func mustCreate(t *testing.T, f *fixture) *dto.QuotationResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), identityFor(permission.RoleOwner), dto.CreateQuotationRequest{
		CustomerID: testCustomerID,
		Items: []dto.QuotationLineRequest{
			{ItemID: testItemID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	return resp
}

// Caso 1: el ciclo DRAFT → SENT → REJECTED es libre mientras no haya conversión.
func TestUpdateStatus_CicloDeVida(t *testing.T) {
	f := newFixture(t)
	q := mustCreate(t, f)

	resp, err := f.uc.UpdateStatus(context.Background(), identityFor(permission.RoleStoreManager), q.ID, dto.UpdateQuotationStatusRequest{
		Status: entity.QuotationStatusSent,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusSent, resp.Status)

	resp, err = f.uc.UpdateStatus(context.Background(), identityFor(permission.RoleStoreManager), q.ID, dto.UpdateQuotationStatusRequest{
		Status: entity.QuotationStatusRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusRejected, resp.Status)
}

// Caso 2: estados fuera del enum → VALIDATION.
func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	f := newFixture(t)
	q := mustCreate(t, f)

	_, err := f.uc.UpdateStatus(context.Background(), identityFor(permission.RoleOwner), q.ID, dto.UpdateQuotationStatusRequest{
		Status: "APPROVED",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// Caso 3: una cotización convertida es registro histórico: ni cambia de
// estado ni se borra.
func TestQuotation_ConvertidaEsInmutable(t *testing.T) {
	f := newFixture(t)
	q := mustCreate(t, f)

	saleID := "00000000-0000-0000-0000-0000000000f1"
	cur, ok := f.store.Quotation(q.ID)
	require.True(t, ok)
	cur.Status = entity.QuotationStatusAccepted
	cur.ConvertedSaleID = &saleID
	f.store.PutQuotation(cur)

	_, err := f.uc.UpdateStatus(context.Background(), identityFor(permission.RoleOwner), q.ID, dto.UpdateQuotationStatusRequest{
		Status: entity.QuotationStatusExpired,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err), "cambio de estado bloqueado")

	err = f.uc.Delete(context.Background(), identityFor(permission.RoleOwner), q.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err), "borrado bloqueado")
}

// Caso 4: una cotización no convertida se borra en cualquier estado.
func TestDelete_NoConvertida(t *testing.T) {
	f := newFixture(t)
	q := mustCreate(t, f)

	_, err := f.uc.UpdateStatus(context.Background(), identityFor(permission.RoleOwner), q.ID, dto.UpdateQuotationStatusRequest{
		Status: entity.QuotationStatusRejected,
	})
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), identityFor(permission.RoleOwner), q.ID)
	require.NoError(t, err)
	_, ok := f.store.Quotation(q.ID)
	assert.False(t, ok, "la cotización debe desaparecer")
}

// Caso 5: staff crea cotizaciones pero no gestiona su ciclo de vida.
func TestUpdateStatus_StaffBloqueado(t *testing.T) {
	f := newFixture(t)
	q := mustCreate(t, f)

	_, err := f.uc.UpdateStatus(context.Background(), identityFor(permission.RoleStaff), q.ID, dto.UpdateQuotationStatusRequest{
		Status: entity.QuotationStatusSent,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}
