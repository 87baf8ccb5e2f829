package repository

import (
	"context"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BalanceRepository define el puerto del saldo por ámbito y producto.
// Solo se modifica con incrementos firmados sobre entradas o salidas acumuladas.
type BalanceRepository interface {
	// Get devuelve el saldo; si no existe fila devuelve un saldo en cero.
	Get(ctx context.Context, scope entity.Scope, productID string) (*entity.Balance, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, scope entity.Scope, productID string) (*entity.Balance, error)
	// Apply suma inflowDelta y outflowDelta (pueden ser negativos) a la fila, creándola si no existe.
	Apply(ctx context.Context, scope entity.Scope, productID string, inflowDelta, outflowDelta decimal.Decimal) error
	// ListByProduct saldos del producto en todos los ámbitos, ordenados por ámbito y cliente.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Balance, error)
}
