package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// ConversionHandler cotizaciones de pesada (protegido, sin efectos).
type ConversionHandler struct {
	uc  *ledger.ConversionUseCase
	log *logger.Logger
}

// NewConversionHandler construye el handler.
func NewConversionHandler(uc *ledger.ConversionUseCase, log *logger.Logger) *ConversionHandler {
	return &ConversionHandler{uc: uc, log: log}
}

// Net godoc
// @Summary      Cotizar oro desde peso bruto
// @Tags         conversion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.NetQuoteRequest  true  "Pesada"
// @Success      200   {object}  dto.NetQuoteResponse
// @Router       /api/conversion/net [post]
func (h *ConversionHandler) Net(c *fiber.Ctx) error {
	var in dto.NetQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.uc.Net(c.UserContext(), in))
}

// Gross peso bruto necesario para una cantidad de oro.
// POST /api/conversion/gross
func (h *ConversionHandler) Gross(c *fiber.Ctx) error {
	var in dto.GrossQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.uc.Gross(c.UserContext(), in))
}
