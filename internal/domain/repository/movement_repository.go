package repository

import (
	"context"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
)

// MovementFilter criterios del historial de movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	ProductID  string
	Scope      string
	ClientID   string
	OnlyActive bool
	Limit      int
	Offset     int
}

// MovementRepository define el puerto de persistencia del kardex.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// FindActiveByOrigin devuelve el movimiento no anulado del origen indicado, o nil.
	FindActiveByOrigin(ctx context.Context, originType, originID string) (*entity.Movement, error)
	MarkVoided(ctx context.Context, m *entity.Movement) error
	// List devuelve movimientos ordenados por fecha ascendente.
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, error)
}
