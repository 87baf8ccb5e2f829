package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// SettlementHandler liquidaciones contra documentos (protegido).
type SettlementHandler struct {
	uc     *ledger.SettlementUseCase
	cancel *ledger.CancellationUseCase
	log    *logger.Logger
}

// NewSettlementHandler construye el handler.
func NewSettlementHandler(uc *ledger.SettlementUseCase, cancel *ledger.CancellationUseCase, log *logger.Logger) *SettlementHandler {
	return &SettlementHandler{uc: uc, cancel: cancel, log: log}
}

// Create godoc
// @Summary      Registrar liquidación
// @Description  Entrega de contrato, liquidación de depósito o de venta según el documento origen.
// @Tags         settlements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSettlementRequest  true  "Liquidación"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settlements [post]
func (h *SettlementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateSettlementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Void anula la liquidación y revierte su movimiento. Solo admin.
// DELETE /api/settlements/:id
func (h *SettlementHandler) Void(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.cancel.VoidSettlement(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
