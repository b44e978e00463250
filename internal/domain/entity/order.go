package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/order"
)

// Order cabecera del pedido. Los datos de contacto se capturan al crear
// (pueden venir de un Client enlazado) para que el pedido quede legible
// aunque el cliente cambie después.
type Order struct {
	ID               string
	Status           order.Status
	ClienteID        *string // enlace opcional a Client
	ClienteNombre    string
	ClienteTelefono  string
	DireccionEntrega string
	FechaEntrega     string // YYYY-MM-DD
	FechaLocal       string // YYYY-MM-DD
	HoraLocal        string // HH:MM
	UsuarioID        string
	CreatedAt        time.Time

	// Bloque de auditoría de aprobación; solo poblado al pasar a approved.
	AprobadoPor   *string
	AprobadoAt    *time.Time
	AprobadoFecha *string // YYYY-MM-DD
	AprobadoHora  *string // HH:MM
}

// OrderItem línea del pedido. Referencia y descripción se desnormalizan
// al agregar la línea; una línea por producto por pedido.
type OrderItem struct {
	ID          string
	PedidoID    string
	ProductoID  string
	Referencia  string
	Descripcion string
	Cantidad    decimal.Decimal // > 0
	Precio      decimal.Decimal
	CreatedAt   time.Time
}

// Subtotal devuelve cantidad * precio.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Cantidad.Mul(i.Precio)
}

// OrderSummary cabecera con agregados derivados para listados.
type OrderSummary struct {
	Order
	ItemsCount decimal.Decimal // suma de cantidades
	Total      decimal.Decimal // suma de cantidad * precio
}
