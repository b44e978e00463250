package orders

import (
	"context"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda mutación de líneas pasa por aquí:
// el bloqueo de producto, la lectura de disponibilidad y la escritura de
// la línea comparten transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
