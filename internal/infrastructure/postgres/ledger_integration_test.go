package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/infrastructure/postgres"
	"github.com/ColiJD/CafeHenola-sub001/pkg/config"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// Requieren una base PostgreSQL desechable en TEST_DATABASE_URL; sin ella se omiten.

// noLock deja la serialización solo en el FOR UPDATE de la transacción.
type noLock struct{}

func (noLock) Lock(context.Context, string) (func(), error) { return func() {}, nil }

type pgFixture struct {
	pool        *pgxpool.Pool
	productID   string
	clientID    string
	documents   *ledger.DocumentUseCase
	settlements *ledger.SettlementUseCase
	cancel      *ledger.CancellationUseCase
	queries     *ledger.QueryUseCase
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	log := logger.Nop()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool, log))

	suffix := uuid.New().String()[:8]
	productID := "cafe-" + suffix
	clientID := "cli-" + suffix
	_, err = pool.Exec(ctx, `INSERT INTO products (id, name, tare, discount, gold_factor) VALUES ($1, 'Café pergamino', 1, 0, 1.15)`, productID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO clients (id, name) VALUES ($1, 'Finca La Esperanza')`, clientID)
	require.NoError(t, err)

	txRunner := postgres.NewTxRunner(pool)
	reader := postgres.Repos(pool)
	products := postgres.NewProductRepository(pool)
	counterparts := postgres.NewCounterpartRepository(pool)
	return &pgFixture{
		pool:        pool,
		productID:   productID,
		clientID:    clientID,
		documents:   ledger.NewDocumentUseCase(txRunner, products, counterparts, log),
		settlements: ledger.NewSettlementUseCase(txRunner, noLock{}, log),
		cancel:      ledger.NewCancellationUseCase(txRunner, reader, noLock{}, log),
		queries:     ledger.NewQueryUseCase(reader),
	}
}

func (f *pgFixture) create(t *testing.T, kind, qty string) *dto.DocumentResponse {
	t.Helper()
	doc, err := f.documents.Create(context.Background(), kind, "user-1", dto.CreateDocumentRequest{
		CounterpartID: f.clientID,
		ProductID:     f.productID,
		Quantity:      decimal.RequireFromString(qty),
		UnitPrice:     decimal.RequireFromString("100"),
		Date:          "2024-03-01",
	})
	require.NoError(t, err)
	return doc
}

func (f *pgFixture) settle(documentID, qty string) (*dto.SettlementResponse, error) {
	return f.settlements.Create(context.Background(), "user-1", dto.CreateSettlementRequest{
		DocumentID: documentID,
		Quantity:   decimal.RequireFromString(qty),
		UnitPrice:  decimal.RequireFromString("100"),
		Date:       "2024-03-05",
	})
}

func requireNet(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

func TestPostgres_SaldoAcumulaConUpsert(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	f.create(t, entity.DocumentKindPurchase, "20")
	f.create(t, entity.DocumentKindPurchase, "5.25")
	f.create(t, entity.DocumentKindDeposit, "7")

	org, err := f.queries.GetBalance(ctx, f.productID, "")
	require.NoError(t, err)
	requireNet(t, "25.25", org.Net)

	scopes, err := f.queries.ListBalances(ctx, f.productID)
	require.NoError(t, err)
	require.Len(t, scopes, 2)
	assert.Equal(t, entity.ScopeClient, scopes[0].Scope)
	requireNet(t, "7", scopes[0].Net)

	replay, err := f.queries.Replay(ctx, f.productID, "")
	require.NoError(t, err)
	assert.True(t, replay.Matches)
	assert.Equal(t, 2, replay.Movements)
}

func TestPostgres_LiquidacionesConcurrentesSerializadasPorFila(t *testing.T) {
	f := newPGFixture(t)
	contract := f.create(t, entity.DocumentKindContract, "10")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.settle(contract.ID, "6")
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientPending):
			conflicts++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	pending, err := f.queries.Pending(context.Background(), contract.ID)
	require.NoError(t, err)
	requireNet(t, "4", pending.Pending)
}

func TestPostgres_AnulacionEnCascadaRestauraSaldo(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	contract := f.create(t, entity.DocumentKindContract, "10")
	_, err := f.settle(contract.ID, "5")
	require.NoError(t, err)
	_, err = f.settle(contract.ID, "3")
	require.NoError(t, err)

	bal, err := f.queries.GetBalance(ctx, f.productID, "")
	require.NoError(t, err)
	requireNet(t, "8", bal.Net)

	res, err := f.cancel.VoidDocument(ctx, "user-1", contract.ID)
	require.NoError(t, err)
	assert.Len(t, res.VoidedSettlements, 2)

	bal, err = f.queries.GetBalance(ctx, f.productID, "")
	require.NoError(t, err)
	requireNet(t, "0", bal.Net)
	pending, err := f.queries.Pending(ctx, contract.ID)
	require.NoError(t, err)
	requireNet(t, "10", pending.Pending)

	_, err = f.cancel.VoidDocument(ctx, "user-1", contract.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)
}
