package repository

import (
	"context"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
)

// ProductRepository puerto de lectura de productos. El CRUD vive fuera de este servicio.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
