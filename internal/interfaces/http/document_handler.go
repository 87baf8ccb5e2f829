package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// DocumentHandler maneja compras, contratos, depósitos y ventas (protegido).
type DocumentHandler struct {
	uc      *ledger.DocumentUseCase
	queries *ledger.QueryUseCase
	cancel  *ledger.CancellationUseCase
	log     *logger.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *ledger.DocumentUseCase, queries *ledger.QueryUseCase, cancel *ledger.CancellationUseCase, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, queries: queries, cancel: cancel, log: log}
}

// CreatePurchase godoc
// @Summary      Registrar compra directa
// @Description  Entrada a la organización. Acepta quantity o gross_weight + sacks (pesada).
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateDocumentRequest  true  "Compra"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *DocumentHandler) CreatePurchase(c *fiber.Ctx) error {
	return h.create(c, entity.DocumentKindPurchase)
}

// CreateContract godoc
// @Summary      Registrar contrato a futuro
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateDocumentRequest  true  "Contrato"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contracts [post]
func (h *DocumentHandler) CreateContract(c *fiber.Ctx) error {
	return h.create(c, entity.DocumentKindContract)
}

// CreateDeposit registra un depósito en custodia del cliente.
// POST /api/deposits
func (h *DocumentHandler) CreateDeposit(c *fiber.Ctx) error {
	return h.create(c, entity.DocumentKindDeposit)
}

// CreateSale godoc
// @Summary      Registrar venta
// @Description  Salida de la organización; 409 INSUFFICIENT_STOCK si no hay existencias.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateDocumentRequest  true  "Venta (counterpart_id = comprador)"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *DocumentHandler) CreateSale(c *fiber.Ctx) error {
	return h.create(c, entity.DocumentKindSale)
}

func (h *DocumentHandler) create(c *fiber.Ctx, kind string) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), kind, userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento con cantidades liquidada y pendiente
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queries.GetDocument(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Pending devuelve cantidad − Σ liquidaciones activas.
// GET /api/documents/:id/pending
func (h *DocumentHandler) Pending(c *fiber.Ctx) error {
	out, err := h.queries.Pending(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListSettlements GET /api/documents/:id/settlements
func (h *DocumentHandler) ListSettlements(c *fiber.Ctx) error {
	out, err := h.queries.ListSettlements(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular documento
// @Description  Revierte su movimiento y anula en cascada sus liquidaciones activas. Solo admin.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.VoidResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Void(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.cancel.VoidDocument(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
