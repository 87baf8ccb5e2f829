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
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/inventory"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// documentPosting movimiento que asienta cada tipo de documento al crearse.
// Los contratos no mueven inventario hasta su primera entrega.
type documentPosting struct {
	direction string
	scope     func(doc *entity.Document) entity.Scope
	guard     bool
	note      string
}

var documentPostings = map[string]*documentPosting{
	entity.DocumentKindPurchase: {
		direction: entity.DirectionIn,
		scope:     func(*entity.Document) entity.Scope { return entity.OrganizationScope() },
		note:      "Compra directa",
	},
	entity.DocumentKindDeposit: {
		direction: entity.DirectionIn,
		scope:     func(d *entity.Document) entity.Scope { return entity.ClientScope(d.CounterpartID) },
		note:      "Depósito de cliente",
	},
	entity.DocumentKindSale: {
		direction: entity.DirectionOut,
		scope:     func(*entity.Document) entity.Scope { return entity.OrganizationScope() },
		guard:     true,
		note:      "Venta a comprador",
	},
	entity.DocumentKindContract: nil,
}

// DocumentUseCase registra compras, contratos, depósitos y ventas; cada uno con su movimiento
// y su efecto en el saldo en una sola transacción.
type DocumentUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	counterpartRepo repository.CounterpartRepository
	log             *logger.Logger
	now             func() time.Time
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	counterpartRepo repository.CounterpartRepository,
	log *logger.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:        txRunner,
		productRepo:     productRepo,
		counterpartRepo: counterpartRepo,
		log:             log,
		now:             time.Now,
	}
}

// CreatePurchase registra una compra directa (entrada a la organización).
func (uc *DocumentUseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	return uc.Create(ctx, entity.DocumentKindPurchase, userID, in)
}

// CreateContract registra un contrato a futuro (queda PENDING, sin movimiento).
func (uc *DocumentUseCase) CreateContract(ctx context.Context, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	return uc.Create(ctx, entity.DocumentKindContract, userID, in)
}

// CreateDeposit registra un depósito (entrada al inventario en custodia del cliente).
func (uc *DocumentUseCase) CreateDeposit(ctx context.Context, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	return uc.Create(ctx, entity.DocumentKindDeposit, userID, in)
}

// CreateSale registra una venta (salida de la organización; exige existencias).
func (uc *DocumentUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	return uc.Create(ctx, entity.DocumentKindSale, userID, in)
}

// Create valida la solicitud fuera de la transacción y luego crea documento, movimiento y saldo atómicamente.
func (uc *DocumentUseCase) Create(ctx context.Context, kind, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if !entity.ValidDocumentKind(kind) {
		return nil, domain.Invalid("tipo de documento %q", kind)
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := checkScales(in.Quantity, in.GrossWeight, in.Sacks, in.UnitPrice); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar producto: %v", domain.ErrInternal, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	if err := uc.checkCounterpart(ctx, kind, in.CounterpartID); err != nil {
		return nil, err
	}

	quantity := in.Quantity
	retained := decimal.Zero
	if in.GrossWeight.GreaterThan(decimal.Zero) {
		if kind == entity.DocumentKindSale {
			return nil, domain.Invalid("las ventas se registran por cantidad neta")
		}
		conv := inventory.NetFromGross(in.GrossWeight, in.Sacks, product, in.UnitPrice)
		quantity = conv.Net
		retained = conv.Retained
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid("la cantidad debe ser mayor que cero")
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid("el precio debe ser mayor que cero")
	}

	now := uc.now()
	if date.IsZero() {
		date = now
	}
	status := entity.DocumentStatusActive
	if kind == entity.DocumentKindContract {
		status = entity.DocumentStatusPending
	}
	doc := &entity.Document{
		ID:            uuid.New().String(),
		Kind:          kind,
		Date:          date,
		ProductID:     product.ID,
		CounterpartID: in.CounterpartID,
		Quantity:      quantity,
		UnitPrice:     in.UnitPrice,
		Total:         quantity.Mul(in.UnitPrice).Round(pricePlaces),
		GrossWeight:   in.GrossWeight,
		Sacks:         in.Sacks,
		Retained:      retained,
		Description:   strings.TrimSpace(in.Description),
		Status:        status,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		if err := repos.Documents.Create(ctx, doc); err != nil {
			return err
		}
		posting := documentPostings[kind]
		if posting == nil {
			return nil
		}
		_, err := PostMovement(ctx, repos, MovementInput{
			Scope:      posting.scope(doc),
			ProductID:  doc.ProductID,
			Direction:  posting.direction,
			Quantity:   doc.Quantity,
			Sacks:      doc.Sacks,
			OriginType: entity.OriginDocument,
			OriginID:   doc.ID,
			Note:       posting.note,
			Date:       doc.Date,
			GuardStock: posting.guard,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("document_id", doc.ID).
		Str("kind", doc.Kind).
		Str("product_id", doc.ProductID).
		Str("quantity", doc.Quantity.String()).
		Msg("documento registrado")

	return toDocumentResponse(doc, decimal.Zero), nil
}

func (uc *DocumentUseCase) checkCounterpart(ctx context.Context, kind, id string) error {
	if kind == entity.DocumentKindSale {
		buyer, err := uc.counterpartRepo.GetBuyer(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: consultar comprador: %v", domain.ErrInternal, err)
		}
		if buyer == nil {
			return fmt.Errorf("%w: comprador %s", domain.ErrNotFound, id)
		}
		return nil
	}
	client, err := uc.counterpartRepo.GetClient(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: consultar cliente: %v", domain.ErrInternal, err)
	}
	if client == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return nil
}

// Escalas de las columnas NUMERIC: cantidades y pesos a centésimos, precios y totales a diezmilésimos.
const (
	quantityPlaces int32 = 2
	pricePlaces    int32 = 4
)

// checkScale rechaza valores con más decimales de los que guarda el almacenamiento.
func checkScale(field string, v decimal.Decimal, places int32) error {
	if !v.Equal(v.Truncate(places)) {
		return domain.Invalid("%s admite como máximo %d decimales: %s", field, places, v)
	}
	return nil
}

func checkScales(quantity, grossWeight, sacks, unitPrice decimal.Decimal) error {
	if err := checkScale("cantidad", quantity, quantityPlaces); err != nil {
		return err
	}
	if err := checkScale("peso bruto", grossWeight, quantityPlaces); err != nil {
		return err
	}
	if err := checkScale("sacos", sacks, quantityPlaces); err != nil {
		return err
	}
	return checkScale("precio", unitPrice, pricePlaces)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.Invalid("fecha %q", s)
	}
	return t, nil
}

func toDocumentResponse(doc *entity.Document, settled decimal.Decimal) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:            doc.ID,
		Kind:          doc.Kind,
		Date:          doc.Date,
		ProductID:     doc.ProductID,
		CounterpartID: doc.CounterpartID,
		Quantity:      doc.Quantity,
		UnitPrice:     doc.UnitPrice,
		Total:         doc.Total,
		GrossWeight:   doc.GrossWeight,
		Sacks:         doc.Sacks,
		Retained:      doc.Retained,
		Description:   doc.Description,
		Status:        doc.Status,
		Settled:       settled,
		Pending:       doc.Quantity.Sub(settled),
		CreatedAt:     doc.CreatedAt,
	}
}
