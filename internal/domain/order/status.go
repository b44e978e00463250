// Package order define la máquina de estados del pedido.
//
// Draft -> Submitted -> Approved; Draft|Submitted -> Cancelled.
// Approved y Cancelled son terminales: un pedido en estado terminal
// no admite más mutaciones de ítems ni cambios de estado.
package order

import "fmt"

// Status estado del pedido. Conjunto cerrado: draft, submitted, approved, cancelled.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

// ParseStatus valida una etiqueta de estado.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("estado de pedido desconocido: %q", s)
}

// IsTerminal indica si el estado no admite más transiciones.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusCancelled
}

// CanTransitionTo indica si la transición s -> next es legal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		// Aprobar directo desde draft es legal: el aprobador puede saltarse el envío.
		return next == StatusSubmitted || next == StatusApproved || next == StatusCancelled
	case StatusSubmitted:
		return next == StatusApproved || next == StatusCancelled
	}
	return false
}
