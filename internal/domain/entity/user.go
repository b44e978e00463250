package entity

import (
	"time"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
)

// User usuario del sistema. La gestión de usuarios es periférica:
// el núcleo solo consume la identidad ya autenticada.
type User struct {
	ID             string
	Email          string
	NombreCompleto string
	PasswordHash   string // bcrypt; nunca plano después de persistir
	Role           auth.Role
	CreatedAt      time.Time
}
