package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest alta de un movimiento en el ledger.
// producto_id o referencia: al menos uno.
type RegisterMovementRequest struct {
	ProductoID string           `json:"producto_id"`
	Referencia string           `json:"referencia"`
	Cantidad   decimal.Decimal  `json:"cantidad"`
	Clase      string           `json:"clase"`  // entrada | salida
	Tipo       string           `json:"tipo"`   // opcional, "manual" por defecto
	Motivo     string           `json:"motivo"`
	FechaLocal string           `json:"fecha_local"` // YYYY-MM-DD
	HoraLocal  string           `json:"hora_local"`  // HH:MM
	Ubicacion  string           `json:"ubicacion"`   // opcional, "principal" por defecto
}

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	Referencia      string          `json:"referencia"`
	Descripcion     string          `json:"descripcion"`
	PrecioLista     decimal.Decimal `json:"precio_lista"`
	Caracteristicas json.RawMessage `json:"caracteristicas"`
}

// MovementResponse fila del ledger de movimientos de un producto.
type MovementResponse struct {
	ID         string          `json:"id"`
	ProductoID string          `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Clase      string          `json:"clase"`
	Tipo       string          `json:"tipo"`
	Motivo     string          `json:"motivo"`
	FechaLocal string          `json:"fecha_local"`
	HoraLocal  string          `json:"hora_local"`
	Ubicacion  string          `json:"ubicacion"`
}

// InventorySummaryItem fila del resumen de inventario.
type InventorySummaryItem struct {
	ID                  string          `json:"id"`
	Referencia          string          `json:"referencia"`
	Descripcion         string          `json:"descripcion"`
	PrecioLista         decimal.Decimal `json:"precio_lista"`
	Caracteristicas     json.RawMessage `json:"caracteristicas"`
	CantidadActual      decimal.Decimal `json:"cantidad_actual"`
	CantidadDisponible  decimal.Decimal `json:"cantidad_disponible"`
}
