package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// reversible es lo que el motor de compensación sabe anular: documentos y liquidaciones.
// Cada variante expone su origen en el kardex, sus dependientes y cómo marcarse anulada.
type reversible interface {
	origin() (originType, originID string)
	voided() bool
	dependents(ctx context.Context, repos Repos) ([]reversible, error)
	markVoided(ctx context.Context, repos Repos, now time.Time) error
}

type documentTarget struct {
	doc *entity.Document
}

func (t *documentTarget) origin() (string, string) { return entity.OriginDocument, t.doc.ID }

func (t *documentTarget) voided() bool { return t.doc.IsVoided() }

func (t *documentTarget) dependents(ctx context.Context, repos Repos) ([]reversible, error) {
	list, err := repos.Settlements.ListByDocument(ctx, t.doc.ID, true)
	if err != nil {
		return nil, err
	}
	deps := make([]reversible, 0, len(list))
	for _, s := range list {
		deps = append(deps, &settlementTarget{settlement: s, source: t.doc, cascading: true})
	}
	return deps, nil
}

func (t *documentTarget) markVoided(ctx context.Context, repos Repos, now time.Time) error {
	t.doc.Status = entity.DocumentStatusVoided
	t.doc.UpdatedAt = now
	return repos.Documents.UpdateStatus(ctx, t.doc)
}

type settlementTarget struct {
	settlement *entity.Settlement
	source     *entity.Document
	cascading  bool // el documento origen se anula en la misma operación
}

func (t *settlementTarget) origin() (string, string) {
	return entity.OriginSettlement, t.settlement.ID
}

func (t *settlementTarget) voided() bool { return t.settlement.IsVoided() }

func (t *settlementTarget) dependents(context.Context, Repos) ([]reversible, error) {
	return nil, nil
}

func (t *settlementTarget) markVoided(ctx context.Context, repos Repos, now time.Time) error {
	t.settlement.Status = entity.SettlementStatusVoided
	t.settlement.UpdatedAt = now
	if err := repos.Settlements.UpdateStatus(ctx, t.settlement); err != nil {
		return err
	}
	// Un contrato entregado por completo vuelve a quedar pendiente
	if !t.cascading && t.source.Kind == entity.DocumentKindContract && t.source.Status == entity.DocumentStatusActive {
		t.source.Status = entity.DocumentStatusPending
		t.source.UpdatedAt = now
		return repos.Documents.UpdateStatus(ctx, t.source)
	}
	return nil
}

// compensation recorre un objetivo y sus dependientes revirtiendo cada movimiento exactamente una vez.
type compensation struct {
	repos             Repos
	now               time.Time
	voidedSettlements []string
}

func (c *compensation) reverse(ctx context.Context, target reversible) error {
	if target.voided() {
		return domain.ErrAlreadyVoided
	}
	originType, originID := target.origin()
	m, err := c.repos.Movements.FindActiveByOrigin(ctx, originType, originID)
	if err != nil {
		return err
	}
	if m != nil {
		if err := reverseMovement(ctx, c.repos, m, c.now); err != nil {
			return err
		}
	}

	deps, err := target.dependents(ctx, c.repos)
	if err != nil {
		return err
	}
	for _, dep := range deps {
		_, depID := dep.origin()
		if err := c.reverse(ctx, dep); err != nil {
			return fmt.Errorf("%w: revertir liquidación %s: %w", domain.ErrInternal, depID, err)
		}
	}

	if err := target.markVoided(ctx, c.repos, c.now); err != nil {
		return err
	}
	if originType == entity.OriginSettlement {
		c.voidedSettlements = append(c.voidedSettlements, originID)
	}
	return nil
}

// CancellationUseCase anula documentos y liquidaciones revirtiendo su efecto en el saldo.
type CancellationUseCase struct {
	txRunner TxRunner
	reader   Repos
	locker   Locker
	log      *logger.Logger
	now      func() time.Time
}

// NewCancellationUseCase construye el caso de uso. reader se usa solo para lecturas previas a la transacción.
func NewCancellationUseCase(txRunner TxRunner, reader Repos, locker Locker, log *logger.Logger) *CancellationUseCase {
	return &CancellationUseCase{
		txRunner: txRunner,
		reader:   reader,
		locker:   locker,
		log:      log,
		now:      time.Now,
	}
}

// VoidDocument anula el documento, su movimiento y en cascada todas sus liquidaciones activas.
// Si alguna reversión dependiente falla no queda nada aplicado.
func (uc *CancellationUseCase) VoidDocument(ctx context.Context, userID, documentID string) (*dto.VoidResponse, error) {
	if documentID == "" {
		return nil, domain.Invalid("id de documento requerido")
	}
	unlock, err := uc.locker.Lock(ctx, documentLockKey(documentID))
	if err != nil {
		return nil, fmt.Errorf("bloquear documento %s: %w", documentID, err)
	}
	defer unlock()

	var comp *compensation
	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		doc, err := repos.Documents.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, documentID)
		}
		comp = &compensation{repos: repos, now: uc.now()}
		return comp.reverse(ctx, &documentTarget{doc: doc})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("document_id", documentID).
		Str("user_id", userID).
		Strs("voided_settlements", comp.voidedSettlements).
		Msg("documento anulado")

	return &dto.VoidResponse{
		Message:           "documento anulado",
		ID:                documentID,
		VoidedSettlements: comp.voidedSettlements,
	}, nil
}

// VoidSettlement anula una liquidación y su movimiento. Bloquea primero el documento origen y luego
// la liquidación, el mismo orden que siguen VoidDocument y las nuevas liquidaciones.
func (uc *CancellationUseCase) VoidSettlement(ctx context.Context, userID, settlementID string) (*dto.VoidResponse, error) {
	if settlementID == "" {
		return nil, domain.Invalid("id de liquidación requerido")
	}
	current, err := uc.reader.Settlements.GetByID(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar liquidación: %v", domain.ErrInternal, err)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: liquidación %s", domain.ErrNotFound, settlementID)
	}

	unlock, err := uc.locker.Lock(ctx, documentLockKey(current.DocumentID))
	if err != nil {
		return nil, fmt.Errorf("bloquear documento %s: %w", current.DocumentID, err)
	}
	defer unlock()

	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		source, err := repos.Documents.GetForUpdate(ctx, current.DocumentID)
		if err != nil {
			return err
		}
		if source == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, current.DocumentID)
		}
		s, err := repos.Settlements.GetForUpdate(ctx, settlementID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: liquidación %s", domain.ErrNotFound, settlementID)
		}
		comp := &compensation{repos: repos, now: uc.now()}
		return comp.reverse(ctx, &settlementTarget{settlement: s, source: source})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("settlement_id", settlementID).
		Str("document_id", current.DocumentID).
		Str("user_id", userID).
		Msg("liquidación anulada")

	return &dto.VoidResponse{Message: "liquidación anulada", ID: settlementID}, nil
}
