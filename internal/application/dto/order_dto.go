package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartOrderRequest creación del pedido en draft.
// Si cliente_id viene informado, los campos de contacto en blanco se
// derivan del cliente enlazado.
type StartOrderRequest struct {
	ClienteID        string `json:"cliente_id"`
	ClienteNombre    string `json:"cliente_nombre"`
	ClienteTelefono  string `json:"cliente_telefono"`
	DireccionEntrega string `json:"direccion_entrega"`
	FechaEntrega     string `json:"fecha_entrega"` // YYYY-MM-DD
	FechaLocal       string `json:"fecha_local"`   // opcional
	HoraLocal        string `json:"hora_local"`    // opcional
}

// UpsertItemRequest agrega o sobrescribe la línea del producto en el pedido.
type UpsertItemRequest struct {
	ProductoID string           `json:"producto_id"`
	Referencia string           `json:"referencia"`
	Cantidad   decimal.Decimal  `json:"cantidad"`
	Precio     *decimal.Decimal `json:"precio"` // nil = precio de lista
}

// UpdateItemRequest actualización parcial de una línea; al menos un campo.
type UpdateItemRequest struct {
	Cantidad *decimal.Decimal `json:"cantidad"`
	Precio   *decimal.Decimal `json:"precio"`
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	PedidoID    string          `json:"pedido_id"`
	ProductoID  string          `json:"producto_id"`
	Referencia  string          `json:"referencia"`
	Descripcion string          `json:"descripcion"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderHeaderResponse cabecera con agregados para listados.
type OrderHeaderResponse struct {
	ID               string          `json:"id"`
	Status           string          `json:"status"`
	ClienteNombre    string          `json:"cliente_nombre"`
	ClienteTelefono  string          `json:"cliente_telefono"`
	DireccionEntrega string          `json:"direccion_entrega"`
	FechaEntrega     string          `json:"fecha_entrega"`
	CreatedAt        time.Time       `json:"created_at"`
	ItemsCount       decimal.Decimal `json:"items_count"`
	Total            decimal.Decimal `json:"total"`
}

// ApprovalResponse bloque de auditoría devuelto por approve.
type ApprovalResponse struct {
	Status        string    `json:"status"`
	AprobadoPor   string    `json:"aprobado_por"`
	AprobadoAt    time.Time `json:"aprobado_at"`
	AprobadoFecha string    `json:"aprobado_fecha"`
	AprobadoHora  string    `json:"aprobado_hora"`
}

// OrderDetailResponse cabecera + líneas en orden de inserción.
type OrderDetailResponse struct {
	Pedido OrderHeaderDetail   `json:"pedido"`
	Items  []OrderItemResponse `json:"items"`
}

// OrderHeaderDetail cabecera completa del pedido.
type OrderHeaderDetail struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	ClienteID        *string   `json:"cliente_id,omitempty"`
	ClienteNombre    string    `json:"cliente_nombre"`
	ClienteTelefono  string    `json:"cliente_telefono"`
	DireccionEntrega string    `json:"direccion_entrega"`
	FechaEntrega     string    `json:"fecha_entrega"`
	FechaLocal       string    `json:"fecha_local"`
	HoraLocal        string    `json:"hora_local"`
	CreatedAt        time.Time `json:"created_at"`

	AprobadoPor   *string    `json:"aprobado_por,omitempty"`
	AprobadoAt    *time.Time `json:"aprobado_at,omitempty"`
	AprobadoFecha *string    `json:"aprobado_fecha,omitempty"`
	AprobadoHora  *string    `json:"aprobado_hora,omitempty"`
}
