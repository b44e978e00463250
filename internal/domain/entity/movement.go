package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de movimiento: entrada suma stock, salida resta.
const (
	ClaseEntrada = "entrada"
	ClaseSalida  = "salida"
)

// Motivos permitidos para un movimiento de inventario (conjunto cerrado).
var AllowedMotivos = []string{
	"Ingreso de mercancía",
	"venta",
	"deterioro",
	"devolución",
	"ajuste",
}

// UbicacionPrincipal ubicación por defecto de los movimientos.
const UbicacionPrincipal = "principal"

// Movement es un registro inmutable del ledger de inventario.
// Nunca se actualiza ni se borra; las correcciones se modelan como
// movimientos nuevos de clase opuesta.
type Movement struct {
	ID         string
	ProductoID string
	Cantidad   decimal.Decimal // siempre > 0; el signo lo da la clase
	Clase      string          // entrada | salida
	Tipo       string          // origen del registro, "manual" por defecto
	Motivo     string
	UsuarioID  string
	FechaLocal string // YYYY-MM-DD
	HoraLocal  string // HH:MM
	Ubicacion  string
	CreatedAt  time.Time
}

// MotivoPermitido verifica pertenencia al conjunto de motivos.
func MotivoPermitido(motivo string) bool {
	for _, m := range AllowedMotivos {
		if m == motivo {
			return true
		}
	}
	return false
}
