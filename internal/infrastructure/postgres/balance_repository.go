package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldos por ámbito y producto sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo; si no hay fila devuelve un saldo en cero.
func (r *BalanceRepo) Get(ctx context.Context, scope entity.Scope, productID string) (*entity.Balance, error) {
	return r.get(ctx, `
		SELECT scope, client_id, product_id, inflow, outflow, updated_at
		FROM balances WHERE scope = $1 AND client_id = $2 AND product_id = $3`, scope, productID)
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
func (r *BalanceRepo) GetForUpdate(ctx context.Context, scope entity.Scope, productID string) (*entity.Balance, error) {
	return r.get(ctx, `
		SELECT scope, client_id, product_id, inflow, outflow, updated_at
		FROM balances WHERE scope = $1 AND client_id = $2 AND product_id = $3 FOR UPDATE`, scope, productID)
}

func (r *BalanceRepo) get(ctx context.Context, query string, scope entity.Scope, productID string) (*entity.Balance, error) {
	b, err := scanBalance(r.q.QueryRow(ctx, query, scope.Kind, scope.ClientID, productID))
	if err != nil {
		if noRows(err) {
			return &entity.Balance{Scope: scope, ProductID: productID, Inflow: decimal.Zero, Outflow: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// Apply suma los incrementos a entradas y salidas, creando la fila si no existe.
func (r *BalanceRepo) Apply(ctx context.Context, scope entity.Scope, productID string, inflowDelta, outflowDelta decimal.Decimal) error {
	query := `
		INSERT INTO balances (scope, client_id, product_id, inflow, outflow, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (scope, client_id, product_id)
		DO UPDATE SET inflow = balances.inflow + EXCLUDED.inflow,
		              outflow = balances.outflow + EXCLUDED.outflow,
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query, scope.Kind, scope.ClientID, productID, inflowDelta, outflowDelta)
	if err != nil {
		return fmt.Errorf("apply balance: %w", err)
	}
	return nil
}

// ListByProduct saldos del producto en todos los ámbitos.
func (r *BalanceRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Balance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT scope, client_id, product_id, inflow, outflow, updated_at
		FROM balances WHERE product_id = $1 ORDER BY scope, client_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	var list []*entity.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBalance(row pgx.Row) (*entity.Balance, error) {
	var b entity.Balance
	if err := row.Scan(&b.Scope.Kind, &b.Scope.ClientID, &b.ProductID, &b.Inflow, &b.Outflow, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
