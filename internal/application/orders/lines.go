package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/dto"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// UpsertLine agrega la línea del producto al pedido o sobrescribe su
// cantidad/precio si ya existe (una línea por producto). Todo el flujo
// corre en una transacción: bloquear producto, comprobar disponibilidad
// excluyendo la reserva propia, escribir la línea.
func (uc *UseCase) UpsertLine(ctx context.Context, principal auth.Principal, pedidoID string, in dto.UpsertItemRequest) (string, error) {
	if !principal.Valid() {
		return "", domain.ErrUnauthorized
	}
	if !in.Cantidad.GreaterThan(decimal.Zero) {
		return "", domain.NewValidationError("cantidad debe ser > 0")
	}
	if in.ProductoID == "" && in.Referencia == "" {
		return "", domain.NewValidationError("debe enviar producto_id o referencia")
	}
	// Un producto_id que no es UUID no puede existir; cortar antes de que
	// llegue a una comparación con columnas uuid.
	if in.ProductoID != "" {
		if _, err := uuid.Parse(in.ProductoID); err != nil {
			return "", domain.ErrNotFound
		}
	}

	var itemID string
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		ord, err := uc.mutableOrder(ctx, orderRepo, pedidoID)
		if err != nil {
			return err
		}

		var product *entity.Product
		if in.ProductoID != "" {
			product, err = productRepo.GetByID(ctx, in.ProductoID)
		} else {
			product, err = productRepo.GetByReferencia(ctx, in.Referencia)
		}
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		// Bloquea la fila del producto: serializa reservas concurrentes
		// del mismo producto hasta el commit.
		if _, err := productRepo.GetForUpdate(ctx, product.ID); err != nil {
			return err
		}
		if err := assertCapacity(ctx, movRepo, orderRepo, product.ID, ord.ID, in.Cantidad); err != nil {
			return err
		}

		precio := product.PrecioLista
		if in.Precio != nil {
			precio = *in.Precio
		}

		existing, err := orderRepo.GetItemByProduct(ctx, ord.ID, product.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			itemID = existing.ID
			return orderRepo.UpdateItem(ctx, existing.ID, in.Cantidad, precio)
		}

		item := &entity.OrderItem{
			ID:          uuid.New().String(),
			PedidoID:    ord.ID,
			ProductoID:  product.ID,
			Referencia:  product.Referencia,
			Descripcion: product.Descripcion,
			Cantidad:    in.Cantidad,
			Precio:      precio,
			CreatedAt:   time.Now(),
		}
		itemID = item.ID
		return orderRepo.InsertItem(ctx, item)
	})
	if err != nil {
		return "", err
	}
	return itemID, nil
}

// UpdateLine actualiza cantidad y/o precio de una línea; al menos uno de
// los dos debe venir. La nueva cantidad pasa por el mismo guard que el alta.
func (uc *UseCase) UpdateLine(ctx context.Context, principal auth.Principal, pedidoID, itemID string, in dto.UpdateItemRequest) error {
	if !principal.Valid() {
		return domain.ErrUnauthorized
	}
	if in.Cantidad == nil && in.Precio == nil {
		return domain.NewValidationError("nada que actualizar")
	}
	if in.Cantidad != nil && !in.Cantidad.GreaterThan(decimal.Zero) {
		return domain.NewValidationError("cantidad debe ser > 0")
	}

	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		ord, err := uc.mutableOrder(ctx, orderRepo, pedidoID)
		if err != nil {
			return err
		}
		item, err := orderRepo.GetItem(ctx, ord.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		newQty := item.Cantidad
		if in.Cantidad != nil {
			newQty = *in.Cantidad
		}
		newPrecio := item.Precio
		if in.Precio != nil {
			newPrecio = *in.Precio
		}

		if _, err := productRepo.GetForUpdate(ctx, item.ProductoID); err != nil {
			return err
		}
		if err := assertCapacity(ctx, movRepo, orderRepo, item.ProductoID, ord.ID, newQty); err != nil {
			return err
		}
		return orderRepo.UpdateItem(ctx, item.ID, newQty, newPrecio)
	})
}

// DeleteLine elimina la línea sin guard: soltar una reserva solo puede
// aumentar el disponible de los demás.
func (uc *UseCase) DeleteLine(ctx context.Context, principal auth.Principal, pedidoID, itemID string) error {
	if !principal.Valid() {
		return domain.ErrUnauthorized
	}
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.MovementRepository,
		_ repository.ProductRepository,
	) error {
		if _, err := uc.mutableOrder(ctx, orderRepo, pedidoID); err != nil {
			return err
		}
		return orderRepo.DeleteItem(ctx, pedidoID, itemID)
	})
}

// mutableOrder carga el pedido con FOR UPDATE y rechaza con Conflict la
// mutación de líneas sobre estados terminales (approved, cancelled). El
// bloqueo de la cabecera impide que una aprobación concurrente apruebe
// el pedido entre esta comprobación y la escritura de la línea.
func (uc *UseCase) mutableOrder(ctx context.Context, orderRepo repository.OrderRepository, pedidoID string) (*entity.Order, error) {
	ord, err := orderRepo.GetForUpdate(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if ord.Status.IsTerminal() {
		return nil, domain.ErrConflict
	}
	return ord, nil
}
