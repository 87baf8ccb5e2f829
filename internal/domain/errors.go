package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los cuatro primeros son las clases estables que ve el llamador; el resto las especializan con %w.
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInternal     = errors.New("error interno")

	ErrInsufficientPending = fmt.Errorf("%w: saldo pendiente insuficiente", ErrConflict)
	ErrInsufficientStock   = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	ErrAlreadyVoided       = fmt.Errorf("%w: el registro ya está anulado", ErrConflict)
	ErrDocumentVoided      = fmt.Errorf("%w: el documento origen está anulado", ErrConflict)
	ErrNotSettleable       = fmt.Errorf("%w: el documento no admite liquidaciones", ErrConflict)
)

// ErrorKind clase estable de error expuesta a los colaboradores.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindConflict   ErrorKind = "CONFLICT"
	KindInternal   ErrorKind = "INTERNAL"
)

// Kind clasifica un error. Cualquier error desconocido es interno.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInternal):
		return KindInternal
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

// Invalid devuelve un ErrInvalidInput con detalle.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
