package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/dto"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/order"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// ListLimit tope fijo del listado de pedidos.
const ListLimit = 200

// UseCase agregado pedido: creación, listados, líneas con guard de
// reserva y transiciones de estado con auditoría.
type UseCase struct {
	txRunner   TxRunner
	orderRepo  repository.OrderRepository
	clientRepo repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, clientRepo repository.ClientRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, clientRepo: clientRepo}
}

// Start valida los datos de contacto y crea el pedido en draft.
// Si viene cliente_id, los campos de contacto en blanco se derivan del
// cliente enlazado antes de validar.
func (uc *UseCase) Start(ctx context.Context, principal auth.Principal, in dto.StartOrderRequest) (string, error) {
	if !principal.Valid() {
		return "", domain.ErrUnauthorized
	}

	var clienteID *string
	if in.ClienteID != "" {
		if _, err := uuid.Parse(in.ClienteID); err != nil {
			return "", domain.ErrNotFound
		}
		client, err := uc.clientRepo.GetByID(ctx, in.ClienteID)
		if err != nil {
			return "", err
		}
		if client == nil {
			return "", domain.ErrNotFound
		}
		clienteID = &client.ID
		if in.ClienteNombre == "" {
			in.ClienteNombre = client.Nombre
		}
		if in.ClienteTelefono == "" {
			in.ClienteTelefono = client.Telefono
		}
		if in.DireccionEntrega == "" {
			in.DireccionEntrega = client.DireccionEntrega
		}
	}

	var errs []string
	if in.ClienteNombre == "" {
		errs = append(errs, "cliente_nombre requerido")
	}
	if in.ClienteTelefono == "" {
		errs = append(errs, "cliente_telefono requerido")
	}
	if in.DireccionEntrega == "" {
		errs = append(errs, "direccion_entrega requerida")
	}
	if _, err := time.Parse("2006-01-02", in.FechaEntrega); err != nil {
		errs = append(errs, "fecha_entrega inválida (YYYY-MM-DD)")
	}
	if in.FechaLocal != "" {
		if _, err := time.Parse("2006-01-02", in.FechaLocal); err != nil {
			errs = append(errs, "fecha_local inválida (YYYY-MM-DD)")
		}
	}
	if in.HoraLocal != "" {
		if _, err := time.Parse("15:04", in.HoraLocal); err != nil {
			errs = append(errs, "hora_local inválida (HH:MM)")
		}
	}
	if len(errs) > 0 {
		return "", domain.NewValidationError(errs...)
	}

	now := time.Now()
	fechaLocal := in.FechaLocal
	if fechaLocal == "" {
		fechaLocal = now.Format("2006-01-02")
	}
	horaLocal := in.HoraLocal
	if horaLocal == "" {
		horaLocal = now.Format("15:04")
	}

	ord := &entity.Order{
		ID:               uuid.New().String(),
		Status:           order.StatusDraft,
		ClienteID:        clienteID,
		ClienteNombre:    in.ClienteNombre,
		ClienteTelefono:  in.ClienteTelefono,
		DireccionEntrega: in.DireccionEntrega,
		FechaEntrega:     in.FechaEntrega,
		FechaLocal:       fechaLocal,
		HoraLocal:        horaLocal,
		UsuarioID:        principal.UserID,
		CreatedAt:        now,
	}
	if err := uc.orderRepo.Create(ctx, ord); err != nil {
		return "", err
	}
	return ord.ID, nil
}

// List devuelve cabeceras con items_count y total derivados, más
// recientes primero, acotado a ListLimit.
func (uc *UseCase) List(ctx context.Context) ([]dto.OrderHeaderResponse, error) {
	rows, err := uc.orderRepo.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderHeaderResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.OrderHeaderResponse{
			ID:               r.ID,
			Status:           string(r.Status),
			ClienteNombre:    r.ClienteNombre,
			ClienteTelefono:  r.ClienteTelefono,
			DireccionEntrega: r.DireccionEntrega,
			FechaEntrega:     r.FechaEntrega,
			CreatedAt:        r.CreatedAt,
			ItemsCount:       r.ItemsCount,
			Total:            r.Total,
		})
	}
	return out, nil
}

// Get devuelve cabecera + líneas en orden de inserción.
func (uc *UseCase) Get(ctx context.Context, pedidoID string) (*dto.OrderDetailResponse, error) {
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

	detail := &dto.OrderDetailResponse{
		Pedido: dto.OrderHeaderDetail{
			ID:               ord.ID,
			Status:           string(ord.Status),
			ClienteID:        ord.ClienteID,
			ClienteNombre:    ord.ClienteNombre,
			ClienteTelefono:  ord.ClienteTelefono,
			DireccionEntrega: ord.DireccionEntrega,
			FechaEntrega:     ord.FechaEntrega,
			FechaLocal:       ord.FechaLocal,
			HoraLocal:        ord.HoraLocal,
			CreatedAt:        ord.CreatedAt,
			AprobadoPor:      ord.AprobadoPor,
			AprobadoAt:       ord.AprobadoAt,
			AprobadoFecha:    ord.AprobadoFecha,
			AprobadoHora:     ord.AprobadoHora,
		},
		Items: make([]dto.OrderItemResponse, 0, len(items)),
	}
	for _, it := range items {
		detail.Items = append(detail.Items, dto.OrderItemResponse{
			ID:          it.ID,
			PedidoID:    it.PedidoID,
			ProductoID:  it.ProductoID,
			Referencia:  it.Referencia,
			Descripcion: it.Descripcion,
			Cantidad:    it.Cantidad,
			Precio:      it.Precio,
			CreatedAt:   it.CreatedAt,
		})
	}
	return detail, nil
}

// Delete elimina líneas y cabecera atómicamente. Liberar las reservas no
// requiere guard: solo puede aumentar el disponible de otros.
func (uc *UseCase) Delete(ctx context.Context, principal auth.Principal, pedidoID string) error {
	if !principal.Valid() {
		return domain.ErrUnauthorized
	}
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.MovementRepository,
		_ repository.ProductRepository,
	) error {
		return orderRepo.Delete(ctx, pedidoID)
	})
}
