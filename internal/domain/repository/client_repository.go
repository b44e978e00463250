package repository

import (
	"context"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// Search filtra por texto libre sobre nombre, email, teléfono,
	// persona de contacto, ciudad y país. q vacío lista todo.
	Search(ctx context.Context, q string, limit int) ([]*entity.Client, error)
}
