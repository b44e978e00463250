package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/inventory"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// assertCapacity es el único punto de control por el que pasa toda
// escritura de cantidad sobre una línea. Calcula el disponible del
// producto excluyendo la reserva del propio pedido y falla con
// CapacityError si la cantidad solicitada lo supera.
//
// Los repos deben venir atados a la tx que ya bloqueó la fila del
// producto (GetForUpdate): el par comprobación+escritura queda
// serializado frente a reservas concurrentes del mismo producto.
func assertCapacity(
	ctx context.Context,
	movRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
	productoID, pedidoID string,
	requested decimal.Decimal,
) error {
	calc := inventory.NewAvailabilityCalculator(movRepo, orderRepo)
	available, err := calc.Available(ctx, productoID, pedidoID)
	if err != nil {
		return err
	}
	if requested.GreaterThan(available) {
		return &domain.CapacityError{
			ProductID: productoID,
			Requested: requested,
			Available: available,
		}
	}
	return nil
}
