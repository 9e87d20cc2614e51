package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
)

func statusFor(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	resp, aerr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, aerr)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// Cada Kind de error de dominio tiene un status HTTP fijo; el código del
// cuerpo es el Kind mismo, estable para los clientes.
func TestRespondError_MapeoPorKind(t *testing.T) {
	casos := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{domain.ErrNoTenant, http.StatusUnauthorized, "NO_TENANT"},
		{domain.Forbidden("void_sales"), http.StatusForbidden, "FORBIDDEN"},
		{domain.NotFoundf("no está"), http.StatusNotFound, "NOT_FOUND"},
		{domain.Validationf("mal"), http.StatusUnprocessableEntity, "VALIDATION"},
		{domain.InsufficientStock("i1", 3, 5), http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.InsufficientBalance("10", "12"), http.StatusConflict, "INSUFFICIENT_BALANCE"},
		{domain.Conflictf("ya convertida"), http.StatusConflict, "CONFLICT"},
		{domain.Transient(errors.New("conexión caída")), http.StatusServiceUnavailable, "TRANSIENT"},
	}
	for _, c := range casos {
		status, body := statusFor(t, c.err)
		assert.Equal(t, c.status, status, "kind %s", c.code)
		assert.Equal(t, c.code, body.Code, "kind %s", c.code)
	}
}

// Los errores que no son de dominio se colapsan a 500 INTERNAL.
func TestRespondError_ErrorNoDeDominio(t *testing.T) {
	status, body := statusFor(t, errors.New("pánico cualquiera"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
}

// El Meta del error viaja como Detail estructurado.
func TestRespondError_DetalleEstructurado(t *testing.T) {
	_, body := statusFor(t, domain.InsufficientStock("i1", 3, 5))
	require.NotNil(t, body.Detail)
	assert.EqualValues(t, 3, body.Detail["available"])
	assert.EqualValues(t, 5, body.Detail["requested"])
}
