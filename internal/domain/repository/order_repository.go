package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/order"
)

// OrderRepository define el puerto de persistencia del agregado pedido
// (cabecera + líneas). Las líneas no tienen puerto propio: las posee el
// agregado.
type OrderRepository interface {
	Create(ctx context.Context, ord *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate obtiene la cabecera bloqueando su fila (SELECT FOR
	// UPDATE). Toda transición de estado y toda mutación de líneas lee
	// la cabecera con este bloqueo dentro de su transacción: dos
	// transiciones concurrentes se serializan y la segunda ve el estado
	// que dejó la primera.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// List devuelve cabeceras con agregados derivados, más recientes primero.
	List(ctx context.Context, limit int) ([]*entity.OrderSummary, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) error
	// Approve escribe status + bloque de auditoría de forma atómica,
	// tomando los campos Aprobado* ya poblados en ord.
	Approve(ctx context.Context, ord *entity.Order) error
	// Delete elimina líneas y cabecera. Devuelve ErrNotFound si la cabecera no existe.
	Delete(ctx context.Context, id string) error

	ListItems(ctx context.Context, pedidoID string) ([]*entity.OrderItem, error)
	GetItem(ctx context.Context, pedidoID, itemID string) (*entity.OrderItem, error)
	// GetItemByProduct busca la línea de un producto en el pedido (una por producto).
	GetItemByProduct(ctx context.Context, pedidoID, productoID string) (*entity.OrderItem, error)
	InsertItem(ctx context.Context, item *entity.OrderItem) error
	UpdateItem(ctx context.Context, itemID string, cantidad, precio decimal.Decimal) error
	DeleteItem(ctx context.Context, pedidoID, itemID string) error

	// ReservedOf suma las cantidades reservadas del producto en pedidos
	// no terminales (draft, submitted), excluyendo excludePedidoID si no
	// está vacío. La exclusión permite que un pedido edite su propia
	// reserva sin bloquearse a sí mismo.
	ReservedOf(ctx context.Context, productoID, excludePedidoID string) (decimal.Decimal, error)
}
