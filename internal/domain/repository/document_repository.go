package repository

import (
	"context"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para compras, contratos, depósitos y ventas.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetForUpdate obtiene el documento y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	// Serializa liquidaciones y anulaciones contra el mismo documento.
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	UpdateStatus(ctx context.Context, doc *entity.Document) error
}
