package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// AvailabilityCalculator deriva stock y disponible de un producto.
// Lectura pura: stock se suma del ledger, reservado de las líneas de
// pedidos no terminales. Nada se cachea; no hay contador que derive.
type AvailabilityCalculator struct {
	movRepo   repository.MovementRepository
	orderRepo repository.OrderRepository
}

// NewAvailabilityCalculator construye el calculador con los repos dados
// (atados al pool para lecturas sueltas, o a una tx dentro del guard).
func NewAvailabilityCalculator(movRepo repository.MovementRepository, orderRepo repository.OrderRepository) *AvailabilityCalculator {
	return &AvailabilityCalculator{movRepo: movRepo, orderRepo: orderRepo}
}

// Stock devuelve Σ entradas − Σ salidas del producto.
func (c *AvailabilityCalculator) Stock(ctx context.Context, productoID string) (decimal.Decimal, error) {
	return c.movRepo.StockOf(ctx, productoID)
}

// Available devuelve stock − reservado-por-otros. excludePedidoID no vacío
// excluye las reservas de ese pedido, para que pueda editar su propia línea
// sin bloquearse a sí mismo. Puede ser negativo bajo carrera; el caller lo
// trata como "nada disponible", no como error.
func (c *AvailabilityCalculator) Available(ctx context.Context, productoID, excludePedidoID string) (decimal.Decimal, error) {
	stock, err := c.movRepo.StockOf(ctx, productoID)
	if err != nil {
		return decimal.Zero, err
	}
	reserved, err := c.orderRepo.ReservedOf(ctx, productoID, excludePedidoID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Sub(reserved), nil
}
