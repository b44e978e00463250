// Package auth define la identidad tipada que viaja por las operaciones
// del núcleo. El principal se pasa explícito como parámetro; nunca se
// apoya en estado ambiente del request.
package auth

import "fmt"

// Role rol del usuario. Conjunto cerrado: viewer, seller, manager, admin.
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleSeller  Role = "seller"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole valida una etiqueta de rol.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleViewer, RoleSeller, RoleManager, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("rol desconocido: %q", s)
}

// CanApprove indica si el rol puede aprobar pedidos.
func (r Role) CanApprove() bool {
	return r == RoleManager || r == RoleAdmin
}

// Principal identidad autenticada del request actual.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// Valid indica si el principal tiene identidad.
func (p Principal) Valid() bool { return p.UserID != "" }
