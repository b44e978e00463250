package repository

import (
	"context"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
