package orders

import (
	"context"
	"time"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/dto"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/order"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// Las tres transiciones corren dentro de una transacción y leen la
// cabecera con FOR UPDATE: dos transiciones concurrentes sobre el mismo
// pedido se serializan, y la que llega segunda decide contra el estado
// que dejó la primera en lugar de contra una lectura obsoleta.

// Submit pasa el pedido a submitted. No revalida reservas: el guard corre
// en cada mutación de línea, no al enviar. Repetir submit es un no-op.
func (uc *UseCase) Submit(ctx context.Context, principal auth.Principal, pedidoID string) error {
	if !principal.Valid() {
		return domain.ErrUnauthorized
	}
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.MovementRepository,
		_ repository.ProductRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(ctx, pedidoID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		if ord.Status == order.StatusSubmitted {
			return nil
		}
		if !ord.Status.CanTransitionTo(order.StatusSubmitted) {
			return domain.ErrConflict
		}
		return orderRepo.UpdateStatus(ctx, pedidoID, order.StatusSubmitted)
	})
}

// Approve transición a approved con sello de auditoría. Solo manager o
// admin; Conflict (sin escritura) si el pedido ya está en estado terminal.
func (uc *UseCase) Approve(ctx context.Context, principal auth.Principal, pedidoID string) (*dto.ApprovalResponse, error) {
	if !principal.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !principal.Role.CanApprove() {
		return nil, domain.ErrForbidden
	}

	var resp *dto.ApprovalResponse
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.MovementRepository,
		_ repository.ProductRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(ctx, pedidoID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		if !ord.Status.CanTransitionTo(order.StatusApproved) {
			return domain.ErrConflict
		}

		now := time.Now()
		fecha := now.Format("2006-01-02")
		hora := now.Format("15:04")
		ord.Status = order.StatusApproved
		ord.AprobadoPor = &principal.UserID
		ord.AprobadoAt = &now
		ord.AprobadoFecha = &fecha
		ord.AprobadoHora = &hora

		if err := orderRepo.Approve(ctx, ord); err != nil {
			return err
		}
		resp = &dto.ApprovalResponse{
			Status:        string(ord.Status),
			AprobadoPor:   principal.UserID,
			AprobadoAt:    now,
			AprobadoFecha: fecha,
			AprobadoHora:  hora,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Cancel transición a cancelled desde draft o submitted; Conflict desde
// estados terminales.
func (uc *UseCase) Cancel(ctx context.Context, principal auth.Principal, pedidoID string) error {
	if !principal.Valid() {
		return domain.ErrUnauthorized
	}
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.MovementRepository,
		_ repository.ProductRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(ctx, pedidoID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		if !ord.Status.CanTransitionTo(order.StatusCancelled) {
			return domain.ErrConflict
		}
		return orderRepo.UpdateStatus(ctx, pedidoID, order.StatusCancelled)
	})
}
