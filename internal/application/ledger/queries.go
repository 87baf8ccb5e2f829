package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
)

// QueryUseCase lecturas para reportes: pendientes, saldos, kardex y reconstrucción del saldo.
type QueryUseCase struct {
	repos Repos
}

// NewQueryUseCase construye el caso de uso con repositorios de solo lectura.
func NewQueryUseCase(repos Repos) *QueryUseCase {
	return &QueryUseCase{repos: repos}
}

// GetDocument devuelve el documento con su cantidad liquidada y pendiente.
func (uc *QueryUseCase) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, settled, err := uc.documentWithSettled(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, settled), nil
}

// Pending devuelve cantidad − Σ(liquidaciones activas) del documento.
func (uc *QueryUseCase) Pending(ctx context.Context, id string) (*dto.PendingResponse, error) {
	doc, settled, err := uc.documentWithSettled(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PendingResponse{
		DocumentID: doc.ID,
		Kind:       doc.Kind,
		Status:     doc.Status,
		Quantity:   doc.Quantity,
		Settled:    settled,
		Pending:    doc.Quantity.Sub(settled),
	}, nil
}

// ListSettlements lista todas las liquidaciones del documento (activas y anuladas).
func (uc *QueryUseCase) ListSettlements(ctx context.Context, documentID string) ([]*dto.SettlementResponse, error) {
	doc, err := uc.repos.Documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: documento %s", domain.ErrNotFound, documentID)
	}
	list, err := uc.repos.Settlements.ListByDocument(ctx, documentID, false)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SettlementResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSettlementResponse(s))
	}
	return out, nil
}

// GetBalance saldo del producto en la organización o, con clientID, en custodia del cliente.
func (uc *QueryUseCase) GetBalance(ctx context.Context, productID, clientID string) (*dto.BalanceResponse, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id requerido")
	}
	scope := scopeFor(clientID)
	bal, err := uc.repos.Balances.Get(ctx, scope, productID)
	if err != nil {
		return nil, err
	}
	out := toBalanceResponse(bal)
	return &out, nil
}

// ListBalances saldos del producto en todos los ámbitos: organización y cada cliente con custodia.
func (uc *QueryUseCase) ListBalances(ctx context.Context, productID string) ([]*dto.BalanceResponse, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id requerido")
	}
	list, err := uc.repos.Balances.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		resp := toBalanceResponse(b)
		out = append(out, &resp)
	}
	return out, nil
}

// ListMovements historial ordenado por fecha ascendente.
func (uc *QueryUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) ([]*dto.MovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Scope == entity.ScopeClient && in.ClientID == "" {
		return nil, domain.Invalid("client_id requerido para el ámbito CLIENT")
	}
	if in.Scope == entity.ScopeOrganization && in.ClientID != "" {
		return nil, domain.Invalid("client_id no aplica al ámbito ORGANIZATION")
	}
	if in.ClientID != "" && in.Scope == "" {
		in.Scope = entity.ScopeClient
	}
	in.DefaultPage()
	list, err := uc.repos.Movements.List(ctx, repository.MovementFilter{
		ProductID: in.ProductID,
		Scope:     in.Scope,
		ClientID:  in.ClientID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Replay reconstruye el saldo sumando los movimientos activos y lo compara con la fila almacenada.
func (uc *QueryUseCase) Replay(ctx context.Context, productID, clientID string) (*dto.ReplayResponse, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id requerido")
	}
	scope := scopeFor(clientID)
	movements, err := uc.repos.Movements.List(ctx, repository.MovementFilter{
		ProductID:  productID,
		Scope:      scope.Kind,
		ClientID:   scope.ClientID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	replayed := ReplayBalance(scope, productID, movements)

	stored, err := uc.repos.Balances.Get(ctx, scope, productID)
	if err != nil {
		return nil, err
	}
	return &dto.ReplayResponse{
		Stored:    toBalanceResponse(stored),
		Replayed:  toBalanceResponse(replayed),
		Movements: len(movements),
		Matches:   stored.Inflow.Equal(replayed.Inflow) && stored.Outflow.Equal(replayed.Outflow),
	}, nil
}

// ReplayBalance suma entradas y salidas de los movimientos activos del ámbito y producto dados.
func ReplayBalance(scope entity.Scope, productID string, movements []*entity.Movement) *entity.Balance {
	bal := &entity.Balance{Scope: scope, ProductID: productID, Inflow: decimal.Zero, Outflow: decimal.Zero}
	for _, m := range movements {
		if m.ProductID != productID || m.Scope.Key() != scope.Key() {
			continue
		}
		switch m.Direction {
		case entity.DirectionIn:
			bal.Inflow = bal.Inflow.Add(m.Quantity)
		case entity.DirectionOut:
			bal.Outflow = bal.Outflow.Add(m.Quantity)
		}
	}
	return bal
}

func (uc *QueryUseCase) documentWithSettled(ctx context.Context, id string) (*entity.Document, decimal.Decimal, error) {
	if id == "" {
		return nil, decimal.Zero, domain.Invalid("id de documento requerido")
	}
	doc, err := uc.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if doc == nil {
		return nil, decimal.Zero, fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
	}
	settled, err := uc.repos.Settlements.SumActiveByDocument(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return doc, settled, nil
}

func scopeFor(clientID string) entity.Scope {
	if clientID != "" {
		return entity.ClientScope(clientID)
	}
	return entity.OrganizationScope()
}

func toBalanceResponse(b *entity.Balance) dto.BalanceResponse {
	return dto.BalanceResponse{
		Scope:     b.Scope.Kind,
		ClientID:  b.Scope.ClientID,
		ProductID: b.ProductID,
		Inflow:    b.Inflow,
		Outflow:   b.Outflow,
		Net:       b.Net(),
	}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		Scope:          m.Scope.Kind,
		ClientID:       m.Scope.ClientID,
		ProductID:      m.ProductID,
		Direction:      m.Direction,
		PriorDirection: m.PriorDirection,
		Quantity:       m.Quantity,
		Sacks:          m.Sacks,
		OriginType:     m.OriginType,
		OriginID:       m.OriginID,
		Note:           m.Note,
		Date:           m.Date,
		VoidedAt:       m.VoidedAt,
	}
}
