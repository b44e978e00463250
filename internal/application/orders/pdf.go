package orders

import (
	"context"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// OrderSheetGenerator puerto para el render imprimible del pedido (remisión).
type OrderSheetGenerator interface {
	GenerateOrderPDF(ctx context.Context, ord *entity.Order, items []*entity.OrderItem) ([]byte, error)
}

// PDFUseCase genera la hoja de pedido imprimible.
type PDFUseCase struct {
	orderRepo repository.OrderRepository
	generator OrderSheetGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(orderRepo repository.OrderRepository, generator OrderSheetGenerator) *PDFUseCase {
	return &PDFUseCase{orderRepo: orderRepo, generator: generator}
}

// OrderSheet devuelve los bytes del PDF del pedido.
func (uc *PDFUseCase) OrderSheet(ctx context.Context, pedidoID string) ([]byte, error) {
	ord, err := uc.orderRepo.GetByID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateOrderPDF(ctx, ord, items)
}
