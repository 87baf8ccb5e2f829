package ledger

import (
	"context"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
)

// Repos repositorios del libro de inventario. Dentro de TxRunner.Run todos comparten la misma transacción.
type Repos struct {
	Documents   repository.DocumentRepository
	Settlements repository.SettlementRepository
	Movements   repository.MovementRepository
	Balances    repository.BalanceRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ninguna escritura queda aplicada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// Locker bloqueo por clave previo a la transacción (en proceso o distribuido).
// El bloqueo de fila dentro de la transacción sigue siendo la garantía de corrección.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func documentLockKey(documentID string) string {
	return "documento:" + documentID
}
