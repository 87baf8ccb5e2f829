package ledger

import (
	"context"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/inventory"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// ConversionUseCase cotiza pesadas con los factores del producto. Es orientativo: nunca falla,
// un producto ausente o mal configurado devuelve ceros.
type ConversionUseCase struct {
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewConversionUseCase construye el caso de uso.
func NewConversionUseCase(productRepo repository.ProductRepository, log *logger.Logger) *ConversionUseCase {
	return &ConversionUseCase{productRepo: productRepo, log: log}
}

// Net convierte peso bruto y sacos a oro, total y retención.
func (uc *ConversionUseCase) Net(ctx context.Context, in dto.NetQuoteRequest) dto.NetQuoteResponse {
	c := inventory.NetFromGross(in.GrossWeight, in.Sacks, uc.product(ctx, in.ProductID), in.UnitPrice)
	return dto.NetQuoteResponse{Net: c.Net, Total: c.Total, Retained: c.Retained}
}

// Gross calcula el peso bruto necesario para obtener al menos la cantidad de oro pedida.
func (uc *ConversionUseCase) Gross(ctx context.Context, in dto.GrossQuoteRequest) dto.GrossQuoteResponse {
	return dto.GrossQuoteResponse{
		GrossWeight: inventory.GrossFromNet(in.Net, in.Sacks, uc.product(ctx, in.ProductID)),
	}
}

func (uc *ConversionUseCase) product(ctx context.Context, id string) *entity.Product {
	if id == "" {
		return nil
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", id).Msg("cotización sin producto")
		return nil
	}
	return p
}
