package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
)

// MovementInput datos para asentar un movimiento.
// GuardStock exige saldo suficiente antes de una salida; las reversiones no lo usan.
type MovementInput struct {
	Scope      entity.Scope
	ProductID  string
	Direction  string
	Quantity   decimal.Decimal
	Sacks      decimal.Decimal
	OriginType string
	OriginID   string
	Note       string
	Date       time.Time
	GuardStock bool
}

// PostMovement asienta el movimiento y aplica su efecto al saldo con los repos de la transacción del caller.
func PostMovement(ctx context.Context, repos Repos, in MovementInput, now time.Time) (*entity.Movement, error) {
	if in.Direction != entity.DirectionIn && in.Direction != entity.DirectionOut {
		return nil, domain.Invalid("dirección de movimiento %q", in.Direction)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid("cantidad de movimiento debe ser positiva")
	}
	if err := checkScale("cantidad", in.Quantity, quantityPlaces); err != nil {
		return nil, err
	}
	if err := checkScale("sacos", in.Sacks, quantityPlaces); err != nil {
		return nil, err
	}
	if in.OriginType == "" || in.OriginID == "" {
		return nil, domain.Invalid("movimiento sin origen")
	}

	inflow, outflow := decimal.Zero, decimal.Zero
	if in.Direction == entity.DirectionIn {
		inflow = in.Quantity
	} else {
		// Bloquea la fila del saldo (SELECT FOR UPDATE) antes de comprobar existencias
		if in.GuardStock {
			bal, err := repos.Balances.GetForUpdate(ctx, in.Scope, in.ProductID)
			if err != nil {
				return nil, err
			}
			if bal.Net().LessThan(in.Quantity) {
				return nil, fmt.Errorf("%w: disponible %s, solicitado %s", domain.ErrInsufficientStock, bal.Net(), in.Quantity)
			}
		}
		outflow = in.Quantity
	}
	if err := repos.Balances.Apply(ctx, in.Scope, in.ProductID, inflow, outflow); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = now
	}
	m := &entity.Movement{
		ID:         uuid.New().String(),
		Scope:      in.Scope,
		ProductID:  in.ProductID,
		Direction:  in.Direction,
		Quantity:   in.Quantity,
		Sacks:      in.Sacks,
		OriginType: in.OriginType,
		OriginID:   in.OriginID,
		Note:       in.Note,
		Date:       date,
		CreatedAt:  now,
	}
	if err := repos.Movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// VoidMovement anula el movimiento y revierte exactamente el delta que aplicó al saldo.
// Debe ejecutarse en la misma transacción que la anulación de su documento o liquidación.
func VoidMovement(ctx context.Context, repos Repos, movementID string, now time.Time) (*entity.Movement, error) {
	m, err := repos.Movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, movementID)
	}
	if err := reverseMovement(ctx, repos, m, now); err != nil {
		return nil, err
	}
	return m, nil
}

// FindActiveMovementByOrigin localiza el movimiento vigente de un documento o liquidación; nil si no tiene.
func FindActiveMovementByOrigin(ctx context.Context, repos Repos, originType, originID string) (*entity.Movement, error) {
	return repos.Movements.FindActiveByOrigin(ctx, originType, originID)
}

func reverseMovement(ctx context.Context, repos Repos, m *entity.Movement, now time.Time) error {
	inflow, outflow := decimal.Zero, decimal.Zero
	switch m.Direction {
	case entity.DirectionIn:
		inflow = m.Quantity.Neg()
	case entity.DirectionOut:
		outflow = m.Quantity.Neg()
	case entity.DirectionVoided:
		return fmt.Errorf("%w: movimiento %s", domain.ErrAlreadyVoided, m.ID)
	default:
		return fmt.Errorf("%w: dirección desconocida %q en movimiento %s", domain.ErrInternal, m.Direction, m.ID)
	}
	if err := repos.Balances.Apply(ctx, m.Scope, m.ProductID, inflow, outflow); err != nil {
		return err
	}
	voidedAt := now
	m.PriorDirection = m.Direction
	m.Direction = entity.DirectionVoided
	m.VoidedAt = &voidedAt
	return repos.Movements.MarkVoided(ctx, m)
}
