package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
	"github.com/ColiJD/CafeHenola-sub001/internal/infrastructure/lock"
	"github.com/ColiJD/CafeHenola-sub001/internal/infrastructure/memory"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

func TestVoidDocument_CascadaSobreLiquidaciones(t *testing.T) {
	f := newFixture(t)
	contract := f.create(t, entity.DocumentKindContract, clientA, "10")
	s1 := f.settle(t, contract.ID, "5")
	s2 := f.settle(t, contract.ID, "3")
	assertDec(t, "8", f.balance(t, "").Net)

	res, err := f.cancel.VoidDocument(context.Background(), userID, contract.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{s1.ID, s2.ID}, res.VoidedSettlements)

	doc, err := f.queries.GetDocument(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusVoided, doc.Status)
	assertDec(t, "10", doc.Pending)

	list, err := f.queries.ListSettlements(context.Background(), contract.ID)
	require.NoError(t, err)
	for _, s := range list {
		assert.Equal(t, entity.SettlementStatusVoided, s.Status)
	}

	bal := f.balance(t, "")
	assertDec(t, "0", bal.Inflow)
	assertDec(t, "0", bal.Net)

	movs, err := f.queries.ListMovements(context.Background(), dto.MovementListRequest{ProductID: productID})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.DirectionVoided, m.Direction)
		assert.Equal(t, entity.DirectionIn, m.PriorDirection)
		assert.NotNil(t, m.VoidedAt)
	}
	f.requireReplayMatches(t, "")
}

func TestVoidDocument_RestauraSaldoPorTipo(t *testing.T) {
	f := newFixture(t)
	purchase := f.create(t, entity.DocumentKindPurchase, clientA, "20")
	sale := f.create(t, entity.DocumentKindSale, buyerID, "10")
	deposit := f.create(t, entity.DocumentKindDeposit, clientB, "7")

	_, err := f.cancel.VoidDocument(context.Background(), userID, sale.ID)
	require.NoError(t, err)
	assertDec(t, "20", f.balance(t, "").Net)

	_, err = f.cancel.VoidDocument(context.Background(), userID, purchase.ID)
	require.NoError(t, err)
	bal := f.balance(t, "")
	assertDec(t, "0", bal.Inflow)
	assertDec(t, "0", bal.Outflow)

	_, err = f.cancel.VoidDocument(context.Background(), userID, deposit.ID)
	require.NoError(t, err)
	assertDec(t, "0", f.balance(t, clientB).Net)

	f.requireReplayMatches(t, "")
	f.requireReplayMatches(t, clientB)
}

func TestVoidDocument_SegundaAnulacionEsConflicto(t *testing.T) {
	f := newFixture(t)
	purchase := f.create(t, entity.DocumentKindPurchase, clientA, "20")

	_, err := f.cancel.VoidDocument(context.Background(), userID, purchase.ID)
	require.NoError(t, err)

	_, err = f.cancel.VoidDocument(context.Background(), userID, purchase.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyVoided)
	assert.Equal(t, domain.KindConflict, domain.Kind(err))
	assertDec(t, "0", f.balance(t, "").Net)

	_, err = f.cancel.VoidDocument(context.Background(), userID, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVoidSettlement_ReabreContrato(t *testing.T) {
	f := newFixture(t)
	contract := f.create(t, entity.DocumentKindContract, clientA, "10")
	s := f.settle(t, contract.ID, "10")

	doc, err := f.queries.GetDocument(context.Background(), contract.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DocumentStatusActive, doc.Status)

	res, err := f.cancel.VoidSettlement(context.Background(), userID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, res.ID)

	doc, err = f.queries.GetDocument(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusPending, doc.Status)
	assertDec(t, "10", doc.Pending)
	assertDec(t, "0", f.balance(t, "").Net)

	// se puede volver a entregar lo anulado
	f.settle(t, contract.ID, "10")
	assertDec(t, "10", f.balance(t, "").Net)
	f.requireReplayMatches(t, "")
}

func TestVoidSettlement_SimetriaYDobleAnulacion(t *testing.T) {
	f := newFixture(t)
	deposit := f.create(t, entity.DocumentKindDeposit, clientA, "10")
	before := f.balance(t, clientA)

	s := f.settle(t, deposit.ID, "4")
	_, err := f.cancel.VoidSettlement(context.Background(), userID, s.ID)
	require.NoError(t, err)

	after := f.balance(t, clientA)
	assertDec(t, before.Inflow.String(), after.Inflow)
	assertDec(t, before.Outflow.String(), after.Outflow)
	assertDec(t, "10", f.pending(t, deposit.ID))

	_, err = f.cancel.VoidSettlement(context.Background(), userID, s.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyVoided)

	_, err = f.cancel.VoidSettlement(context.Background(), userID, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVoidDocument_OmiteLiquidacionesYaAnuladas(t *testing.T) {
	f := newFixture(t)
	contract := f.create(t, entity.DocumentKindContract, clientA, "10")
	s1 := f.settle(t, contract.ID, "5")
	s2 := f.settle(t, contract.ID, "3")

	_, err := f.cancel.VoidSettlement(context.Background(), userID, s1.ID)
	require.NoError(t, err)

	res, err := f.cancel.VoidDocument(context.Background(), userID, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{s2.ID}, res.VoidedSettlements)
	assertDec(t, "0", f.balance(t, "").Net)
	f.requireReplayMatches(t, "")
}

// failingMovements falla al anular el movimiento de un origen concreto.
type failingMovements struct {
	repository.MovementRepository
	failOrigin string
}

func (m failingMovements) MarkVoided(ctx context.Context, mov *entity.Movement) error {
	if mov.OriginID == m.failOrigin {
		return errors.New("disco lleno")
	}
	return m.MovementRepository.MarkVoided(ctx, mov)
}

type failingRunner struct {
	store      *memory.Store
	failOrigin string
}

func (r failingRunner) Run(ctx context.Context, fn func(repos ledger.Repos) error) error {
	return r.store.Run(ctx, func(repos ledger.Repos) error {
		repos.Movements = failingMovements{MovementRepository: repos.Movements, failOrigin: r.failOrigin}
		return fn(repos)
	})
}

func TestVoidDocument_FalloDependienteNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	contract := f.create(t, entity.DocumentKindContract, clientA, "10")
	f.settle(t, contract.ID, "5")
	s2 := f.settle(t, contract.ID, "3")

	cancel := ledger.NewCancellationUseCase(
		failingRunner{store: f.store, failOrigin: s2.ID}, f.store.Repos(), lock.NewLocal(), logger.Nop(),
	)
	_, err := cancel.VoidDocument(context.Background(), userID, contract.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.Kind(err))

	doc, err := f.queries.GetDocument(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusPending, doc.Status)
	assertDec(t, "2", doc.Pending)

	list, err := f.queries.ListSettlements(context.Background(), contract.ID)
	require.NoError(t, err)
	for _, s := range list {
		assert.Equal(t, entity.SettlementStatusActive, s.Status)
	}
	assertDec(t, "8", f.balance(t, "").Net)
	f.requireReplayMatches(t, "")
}
