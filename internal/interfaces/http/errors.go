package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/dto"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// conflictCodes códigos específicos de los conflictos de negocio.
var conflictCodes = []struct {
	err  error
	code string
}{
	{domain.ErrInsufficientPending, "INSUFFICIENT_PENDING"},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{domain.ErrDocumentVoided, "DOCUMENT_VOIDED"},
	{domain.ErrNotSettleable, "NOT_SETTLEABLE"},
}

// writeError traduce un error de aplicación a su respuesta HTTP. Los internos se registran y no se exponen.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch domain.Kind(err) {
	case domain.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case domain.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case domain.KindConflict:
		// Ya anulado responde 400, no 409
		if errors.Is(err, domain.ErrAlreadyVoided) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_VOIDED", Message: err.Error()})
		}
		code := "CONFLICT"
		for _, cc := range conflictCodes {
			if errors.Is(err, cc.err) {
				code = cc.code
				break
			}
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno, intente más tarde"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
