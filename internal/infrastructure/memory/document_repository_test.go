package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenantID = "00000000-0000-0000-0000-0000000000a1"
	testQuoteID  = "00000000-0000-0000-0000-0000000000e1"
	testOrderID  = "00000000-0000-0000-0000-0000000000e2"
	testSaleID   = "00000000-0000-0000-0000-0000000000f1"
)

func seedQuotation(st *memory.Store, converted bool) {
	q := entity.Quotation{
		ID: testQuoteID, TenantID: testTenantID,
		Status:      entity.QuotationStatusSent,
		TotalAmount: decimal.NewFromInt(60),
	}
	if converted {
		saleID := testSaleID
		q.Status = entity.QuotationStatusAccepted
		q.ConvertedSaleID = &saleID
	}
	st.PutQuotation(q)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado atómico vía TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: si la función transaccional falla después de borrar, el
// documento reaparece: todo o nada.
func TestRunDocuments_BorradoRevierteTrasFallo(t *testing.T) {
	st := memory.NewStore()
	seedQuotation(st, false)
	runner := memory.NewTxRunner(st)

	boom := errors.New("fallo simulado tras el borrado")
	err := runner.RunDocuments(context.Background(), func(
		quotationRepo repository.QuotationRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		if err := quotationRepo.Delete(context.Background(), testTenantID, testQuoteID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := st.Quotation(testQuoteID)
	assert.True(t, ok, "el borrado parcial debe revertirse completo")
}

// Caso 2: sin fallo, el borrado dentro de la transacción confirma.
func TestRunDocuments_BorradoConfirma(t *testing.T) {
	st := memory.NewStore()
	seedQuotation(st, false)
	runner := memory.NewTxRunner(st)

	err := runner.RunDocuments(context.Background(), func(
		quotationRepo repository.QuotationRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		return quotationRepo.Delete(context.Background(), testTenantID, testQuoteID)
	})
	require.NoError(t, err)

	_, ok := st.Quotation(testQuoteID)
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Puerta de inmutabilidad en UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: una cotización ya convertida no cambia de estado ni siquiera con
// una escritura directa al repositorio (la carrera con una conversión
// concurrente se resuelve en la condición de la escritura, no en el lector).
func TestQuotationUpdateStatus_ConvertidaRechaza(t *testing.T) {
	st := memory.NewStore()
	seedQuotation(st, true)
	repo := memory.NewQuotationRepository(st)

	err := repo.UpdateStatus(context.Background(), testTenantID, testQuoteID, entity.QuotationStatusRejected)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	q, ok := st.Quotation(testQuoteID)
	require.True(t, ok)
	assert.Equal(t, entity.QuotationStatusAccepted, q.Status, "ACCEPTED debe sobrevivir a la escritura tardía")
}

// Caso 2: una orden ya recibida tampoco admite cambios de estado directos.
func TestPurchaseOrderUpdateStatus_RecibidaRechaza(t *testing.T) {
	st := memory.NewStore()
	purchaseID := "00000000-0000-0000-0000-0000000000f2"
	st.PutOrder(entity.PurchaseOrder{
		ID: testOrderID, TenantID: testTenantID,
		Status:              entity.PurchaseOrderStatusReceived,
		ConvertedPurchaseID: &purchaseID,
		TotalAmount:         decimal.NewFromInt(50),
	})
	repo := memory.NewPurchaseOrderRepository(st)

	err := repo.UpdateStatus(context.Background(), testTenantID, testOrderID, entity.PurchaseOrderStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	o, ok := st.Order(testOrderID)
	require.True(t, ok)
	assert.Equal(t, entity.PurchaseOrderStatusReceived, o.Status)
}
