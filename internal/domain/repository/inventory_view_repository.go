package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
)

// ProductAvailability fila del resumen de inventario.
// Lo produce la DB; el use case lo convierte en DTO.
type ProductAvailability struct {
	Product        entity.Product
	CantidadActual decimal.Decimal // stock físico (ledger)
	Disponible     decimal.Decimal // stock − reservado; puede ser negativo bajo carrera
}

// InventoryViewRepository consultas de lectura del inventario derivado.
// Las implementaciones son read-only.
type InventoryViewRepository interface {
	// Summary devuelve stock y disponible por producto, ordenado por
	// referencia. excludePedidoID no vacío excluye las reservas de ese
	// pedido del cálculo del disponible.
	Summary(ctx context.Context, excludePedidoID string) ([]*ProductAvailability, error)
}
