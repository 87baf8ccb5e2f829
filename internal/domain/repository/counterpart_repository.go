package repository

import (
	"context"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
)

// CounterpartRepository puerto de lectura de clientes y compradores.
type CounterpartRepository interface {
	GetClient(ctx context.Context, id string) (*entity.Client, error)
	GetBuyer(ctx context.Context, id string) (*entity.Buyer, error)
}
