package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
)

// ValidationError acumula mensajes por campo; envuelve ErrInvalidInput
// para que errors.Is siga funcionando en los handlers.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validación: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye el error con los mensajes dados.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// CapacityError indica que la cantidad solicitada supera el disponible.
// Transporta el disponible para que el caller pueda informarlo al usuario.
type CapacityError struct {
	ProductID string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cantidad solicitada supera el disponible (%s)", e.Available.String())
}

func (e *CapacityError) Unwrap() error { return ErrConflict }
