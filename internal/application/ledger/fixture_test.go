package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/infrastructure/lock"
	"github.com/ColiJD/CafeHenola-sub001/internal/infrastructure/memory"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

const (
	productID = "cafe"
	clientA   = "cli-a"
	clientB   = "cli-b"
	buyerID   = "comp-1"
	userID    = "user-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store       *memory.Store
	documents   *ledger.DocumentUseCase
	settlements *ledger.SettlementUseCase
	cancel      *ledger.CancellationUseCase
	queries     *ledger.QueryUseCase
	conversion  *ledger.ConversionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	store.AddProduct(entity.Product{ID: productID, Name: "Café pergamino", Tare: d("1"), Discount: d("0"), GoldFactor: d("1.15")})
	store.AddClient(entity.Client{ID: clientA, Name: "Finca La Esperanza"})
	store.AddClient(entity.Client{ID: clientB, Name: "Finca El Roble"})
	store.AddBuyer(entity.Buyer{ID: buyerID, Name: "Exportadora del Valle"})

	log := logger.Nop()
	locker := lock.NewLocal()
	return &fixture{
		store:       store,
		documents:   ledger.NewDocumentUseCase(store, store.Products(), store.Counterparts(), log),
		settlements: ledger.NewSettlementUseCase(store, locker, log),
		cancel:      ledger.NewCancellationUseCase(store, store.Repos(), locker, log),
		queries:     ledger.NewQueryUseCase(store.Repos()),
		conversion:  ledger.NewConversionUseCase(store.Products(), log),
	}
}

func docRequest(counterpart, qty, price string) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		CounterpartID: counterpart,
		ProductID:     productID,
		Quantity:      d(qty),
		UnitPrice:     d(price),
		Date:          "2024-03-01",
	}
}

func (f *fixture) create(t *testing.T, kind, counterpart, qty string) *dto.DocumentResponse {
	t.Helper()
	doc, err := f.documents.Create(context.Background(), kind, userID, docRequest(counterpart, qty, "100"))
	require.NoError(t, err)
	return doc
}

func (f *fixture) settle(t *testing.T, documentID, qty string) *dto.SettlementResponse {
	t.Helper()
	s, err := f.settlements.Create(context.Background(), userID, dto.CreateSettlementRequest{
		DocumentID: documentID,
		Quantity:   d(qty),
		UnitPrice:  d("100"),
		Date:       "2024-03-05",
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) balance(t *testing.T, clientID string) *dto.BalanceResponse {
	t.Helper()
	b, err := f.queries.GetBalance(context.Background(), productID, clientID)
	require.NoError(t, err)
	return b
}

func (f *fixture) pending(t *testing.T, documentID string) decimal.Decimal {
	t.Helper()
	p, err := f.queries.Pending(context.Background(), documentID)
	require.NoError(t, err)
	return p.Pending
}

func (f *fixture) requireReplayMatches(t *testing.T, clientID string) {
	t.Helper()
	r, err := f.queries.Replay(context.Background(), productID, clientID)
	require.NoError(t, err)
	require.True(t, r.Matches, "saldo %+v, reconstruido %+v", r.Stored, r.Replayed)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, d(want).Equal(got), "esperado %s, obtenido %s", want, got.String())
}
