package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// settlementPolicy define qué liquidación admite cada documento y qué movimiento asienta.
// Las compras se cierran al registrarse y no admiten liquidaciones.
type settlementPolicy struct {
	kind      string
	direction string
	scope     func(source *entity.Document) entity.Scope
	guard     bool
	note      string
}

var settlementPolicies = map[string]settlementPolicy{
	// La entrega de un contrato es la recepción física del producto comprometido.
	entity.DocumentKindContract: {
		kind:      entity.SettlementKindContractDelivery,
		direction: entity.DirectionIn,
		scope:     func(*entity.Document) entity.Scope { return entity.OrganizationScope() },
		note:      "Entrega de contrato",
	},
	// Liquidar un depósito saca el producto del inventario en custodia del cliente.
	entity.DocumentKindDeposit: {
		kind:      entity.SettlementKindDepositLiquidation,
		direction: entity.DirectionOut,
		scope:     func(d *entity.Document) entity.Scope { return entity.ClientScope(d.CounterpartID) },
		guard:     true,
		note:      "Liquidación de depósito",
	},
	// La venta ya dio salida a la organización; su liquidación asienta el sentido contrario.
	entity.DocumentKindSale: {
		kind:      entity.SettlementKindSaleLiquidation,
		direction: entity.DirectionIn,
		scope:     func(*entity.Document) entity.Scope { return entity.OrganizationScope() },
		note:      "Liquidación de venta",
	},
}

// SettlementUseCase registra liquidaciones parciales o totales contra un documento origen.
type SettlementUseCase struct {
	txRunner TxRunner
	locker   Locker
	log      *logger.Logger
	now      func() time.Time
}

// NewSettlementUseCase construye el caso de uso.
func NewSettlementUseCase(txRunner TxRunner, locker Locker, log *logger.Logger) *SettlementUseCase {
	return &SettlementUseCase{
		txRunner: txRunner,
		locker:   locker,
		log:      log,
		now:      time.Now,
	}
}

// Create bloquea el documento origen, recalcula su pendiente dentro de la transacción y, si alcanza,
// crea la liquidación y su movimiento. Dos liquidaciones concurrentes nunca consumen más que el documento.
func (uc *SettlementUseCase) Create(ctx context.Context, userID string, in dto.CreateSettlementRequest) (*dto.SettlementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := checkScales(in.Quantity, decimal.Zero, decimal.Zero, in.UnitPrice); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, documentLockKey(in.DocumentID))
	if err != nil {
		return nil, fmt.Errorf("bloquear documento %s: %w", in.DocumentID, err)
	}
	defer unlock()

	now := uc.now()
	if date.IsZero() {
		date = now
	}
	var settlement *entity.Settlement
	var pendingAfter decimal.Decimal

	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		// Bloquea la fila del documento (SELECT FOR UPDATE) hasta el Commit
		source, err := repos.Documents.GetForUpdate(ctx, in.DocumentID)
		if err != nil {
			return err
		}
		if source == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, in.DocumentID)
		}
		if source.IsVoided() {
			return domain.ErrDocumentVoided
		}
		policy, ok := settlementPolicies[source.Kind]
		if !ok {
			return fmt.Errorf("%w: tipo %s", domain.ErrNotSettleable, source.Kind)
		}

		settled, err := repos.Settlements.SumActiveByDocument(ctx, source.ID)
		if err != nil {
			return err
		}
		pending := source.Quantity.Sub(settled)
		if in.Quantity.GreaterThan(pending) {
			return fmt.Errorf("%w: pendiente %s, solicitado %s", domain.ErrInsufficientPending, pending, in.Quantity)
		}

		settlement = &entity.Settlement{
			ID:          uuid.New().String(),
			Kind:        policy.kind,
			DocumentID:  source.ID,
			Date:        date,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Total:       in.Quantity.Mul(in.UnitPrice).Round(pricePlaces),
			Description: strings.TrimSpace(in.Description),
			Status:      entity.SettlementStatusActive,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repos.Settlements.Create(ctx, settlement); err != nil {
			return err
		}
		if _, err := PostMovement(ctx, repos, MovementInput{
			Scope:      policy.scope(source),
			ProductID:  source.ProductID,
			Direction:  policy.direction,
			Quantity:   settlement.Quantity,
			OriginType: entity.OriginSettlement,
			OriginID:   settlement.ID,
			Note:       policy.note,
			Date:       settlement.Date,
			GuardStock: policy.guard,
		}, now); err != nil {
			return err
		}

		pendingAfter = pending.Sub(in.Quantity)
		if source.Kind == entity.DocumentKindContract && pendingAfter.IsZero() {
			source.Status = entity.DocumentStatusActive
			source.UpdatedAt = now
			return repos.Documents.UpdateStatus(ctx, source)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("settlement_id", settlement.ID).
		Str("document_id", settlement.DocumentID).
		Str("kind", settlement.Kind).
		Str("quantity", settlement.Quantity.String()).
		Str("pending", pendingAfter.String()).
		Msg("liquidación registrada")

	return toSettlementResponse(settlement), nil
}

func toSettlementResponse(s *entity.Settlement) *dto.SettlementResponse {
	return &dto.SettlementResponse{
		ID:          s.ID,
		Kind:        s.Kind,
		DocumentID:  s.DocumentID,
		Date:        s.Date,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Total:       s.Total,
		Description: s.Description,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
	}
}
