package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, scope, client_id, product_id, direction, prior_direction, quantity, sacks,
	origin_type, origin_id, note, date, created_at, voided_at`

// MovementRepo kardex sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Scope.Kind, m.Scope.ClientID, m.ProductID, m.Direction, m.PriorDirection, m.Quantity, m.Sacks,
		m.OriginType, m.OriginID, m.Note, m.Date, m.CreatedAt, m.VoidedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// FindActiveByOrigin movimiento no anulado del origen, bloqueado para la anulación.
func (r *MovementRepo) FindActiveByOrigin(ctx context.Context, originType, originID string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE origin_type = $1 AND origin_id = $2 AND direction <> 'VOIDED'
		ORDER BY created_at ASC LIMIT 1 FOR UPDATE`
	m, err := scanMovement(r.q.QueryRow(ctx, query, originType, originID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find movement by origin: %w", err)
	}
	return m, nil
}

// MarkVoided registra la anulación conservando la dirección previa.
func (r *MovementRepo) MarkVoided(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx,
		`UPDATE movements SET direction = $2, prior_direction = $3, voided_at = $4 WHERE id = $1`,
		m.ID, m.Direction, m.PriorDirection, m.VoidedAt,
	)
	if err != nil {
		return fmt.Errorf("void movement: %w", err)
	}
	return nil
}

// List movimientos filtrados por fecha ascendente.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1 = 1`
	args := []any{}
	pos := 1
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.Scope != "" {
		query += fmt.Sprintf(" AND scope = $%d", pos)
		args = append(args, f.Scope)
		pos++
	}
	if f.ClientID != "" {
		query += fmt.Sprintf(" AND client_id = $%d", pos)
		args = append(args, f.ClientID)
		pos++
	}
	if f.OnlyActive {
		query += " AND direction <> 'VOIDED'"
	}
	query += " ORDER BY date ASC, created_at ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
		pos++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.Scope.Kind, &m.Scope.ClientID, &m.ProductID, &m.Direction, &m.PriorDirection, &m.Quantity, &m.Sacks,
		&m.OriginType, &m.OriginID, &m.Note, &m.Date, &m.CreatedAt, &m.VoidedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
