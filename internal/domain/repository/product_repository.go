package repository

import (
	"context"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByReferencia(ctx context.Context, referencia string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Serializa las reservas concurrentes sobre el mismo producto: toda
	// comprobación de disponibilidad seguida de escritura de línea debe
	// tomar este bloqueo dentro de la misma transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
}
