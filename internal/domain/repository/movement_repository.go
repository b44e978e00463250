package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
)

// MovementRepository define el puerto del ledger de movimientos.
// El ledger es append-only: no existen Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// StockOf suma los movimientos firmados del producto:
	// Σ entradas − Σ salidas. Fuente única de verdad del stock físico.
	StockOf(ctx context.Context, productoID string) (decimal.Decimal, error)
	ListByProduct(ctx context.Context, productoID string, limit, offset int) ([]*entity.Movement, error)
}
