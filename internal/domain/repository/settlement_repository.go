package repository

import (
	"context"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SettlementRepository define el puerto de persistencia para liquidaciones (detalles de cumplimiento).
type SettlementRepository interface {
	Create(ctx context.Context, s *entity.Settlement) error
	GetByID(ctx context.Context, id string) (*entity.Settlement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Settlement, error)
	UpdateStatus(ctx context.Context, s *entity.Settlement) error
	// ListByDocument devuelve las liquidaciones del documento ordenadas por fecha ascendente.
	ListByDocument(ctx context.Context, documentID string, onlyActive bool) ([]*entity.Settlement, error)
	// SumActiveByDocument suma las cantidades de las liquidaciones activas del documento.
	// Es la base del saldo pendiente; nunca se guarda de forma redundante.
	SumActiveByDocument(ctx context.Context, documentID string) (decimal.Decimal, error)
}
