package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo textil.
// El stock NUNCA se guarda como contador: se deriva del ledger de movimientos.
type Product struct {
	ID              string
	Referencia      string // código único
	Descripcion     string
	PrecioLista     decimal.Decimal
	Caracteristicas json.RawMessage // atributos libres (color, tela, gramaje...)
	CreatedAt       time.Time
}
