package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

const settlementColumns = `id, kind, document_id, date, quantity, unit_price, total,
	description, status, created_by, created_at, updated_at`

// SettlementRepo liquidaciones sobre PostgreSQL (usable con pool o tx).
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

// Create persiste la liquidación.
func (r *SettlementRepo) Create(ctx context.Context, s *entity.Settlement) error {
	query := `INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Kind, s.DocumentID, s.Date, s.Quantity, s.UnitPrice, s.Total,
		s.Description, s.Status, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, s.DocumentID)
		}
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

// GetByID obtiene una liquidación por ID; nil si no existe.
func (r *SettlementRepo) GetByID(ctx context.Context, id string) (*entity.Settlement, error) {
	return r.get(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la liquidación.
func (r *SettlementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Settlement, error) {
	return r.get(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE id = $1 FOR UPDATE`, id)
}

func (r *SettlementRepo) get(ctx context.Context, query, id string) (*entity.Settlement, error) {
	s, err := scanSettlement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settlement: %w", err)
	}
	return s, nil
}

// UpdateStatus cambia el estado de la liquidación.
func (r *SettlementRepo) UpdateStatus(ctx context.Context, s *entity.Settlement) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE settlements SET status = $2, updated_at = $3 WHERE id = $1`,
		s.ID, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settlement status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: liquidación %s", domain.ErrNotFound, s.ID)
	}
	return nil
}

// ListByDocument liquidaciones del documento por fecha ascendente.
func (r *SettlementRepo) ListByDocument(ctx context.Context, documentID string, onlyActive bool) ([]*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE document_id = $1`
	if onlyActive {
		query += ` AND status = 'ACTIVE'`
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SumActiveByDocument suma las cantidades activas del documento.
func (r *SettlementRepo) SumActiveByDocument(ctx context.Context, documentID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM settlements WHERE document_id = $1 AND status = 'ACTIVE'`,
		documentID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum settlements: %w", err)
	}
	return sum, nil
}

func scanSettlement(row pgx.Row) (*entity.Settlement, error) {
	var s entity.Settlement
	err := row.Scan(
		&s.ID, &s.Kind, &s.DocumentID, &s.Date, &s.Quantity, &s.UnitPrice, &s.Total,
		&s.Description, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
