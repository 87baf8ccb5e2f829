package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// LedgerHandler saldos y kardex (protegido).
type LedgerHandler struct {
	queries *ledger.QueryUseCase
	log     *logger.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(queries *ledger.QueryUseCase, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{queries: queries, log: log}
}

// Balance godoc
// @Summary      Saldo de un producto
// @Description  Sin client_id: saldo de la organización. Con client_id: inventario en custodia del cliente.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        productID  path      string  true   "ID del producto"
// @Param        client_id  query     string  false  "ID del cliente"
// @Success      200        {object}  dto.BalanceResponse
// @Router       /api/balances/{productID} [get]
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	out, err := h.queries.GetBalance(c.UserContext(), c.Params("productID"), c.Query("client_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// BalanceScopes godoc
// @Summary      Saldos de un producto por ámbito
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        productID  path      string  true  "ID del producto"
// @Success      200        {array}   dto.BalanceResponse
// @Router       /api/balances/{productID}/scopes [get]
func (h *LedgerHandler) BalanceScopes(c *fiber.Ctx) error {
	out, err := h.queries.ListBalances(c.UserContext(), c.Params("productID"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Replay reconstruye el saldo desde los movimientos activos y lo compara con el almacenado.
// GET /api/balances/:productID/replay
func (h *LedgerHandler) Replay(c *fiber.Ctx) error {
	out, err := h.queries.Replay(c.UserContext(), c.Params("productID"), c.Query("client_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !out.Matches {
		h.log.Warn().
			Str("product_id", out.Stored.ProductID).
			Str("scope", out.Stored.Scope).
			Str("client_id", out.Stored.ClientID).
			Str("stored_net", out.Stored.Net.String()).
			Str("replayed_net", out.Replayed.Net.String()).
			Msg("saldo almacenado no coincide con el kardex")
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Kardex
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        product_id  query     string  false  "Producto"
// @Param        scope       query     string  false  "ORGANIZATION o CLIENT"
// @Param        client_id   query     string  false  "Cliente"
// @Param        limit       query     int     false  "Máximo de filas (100 por defecto)"
// @Param        offset      query     int     false  "Desplazamiento"
// @Success      200         {array}   dto.MovementResponse
// @Router       /api/movements [get]
func (h *LedgerHandler) Movements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.queries.ListMovements(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
