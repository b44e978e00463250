package inventory

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

// UseCase operaciones de inventario: alta de movimientos en el ledger,
// alta de productos y resumen de disponibilidad.
type UseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	viewRepo    repository.InventoryViewRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	viewRepo repository.InventoryViewRepository,
) *UseCase {
	return &UseCase{movRepo: movRepo, productRepo: productRepo, viewRepo: viewRepo}
}

// RegisterMovement valida y agrega un movimiento inmutable al ledger.
// Resuelve el producto por id o por referencia única. Las correcciones no
// modifican filas previas: se registran como movimientos de clase opuesta.
func (uc *UseCase) RegisterMovement(ctx context.Context, principal auth.Principal, in dto.RegisterMovementRequest) (string, error) {
	if !principal.Valid() {
		return "", domain.ErrUnauthorized
	}

	var errs []string
	if !in.Cantidad.GreaterThan(decimal.Zero) {
		errs = append(errs, "cantidad debe ser > 0")
	}
	if in.Clase != entity.ClaseEntrada && in.Clase != entity.ClaseSalida {
		errs = append(errs, "clase debe ser 'entrada' o 'salida'")
	}
	if !entity.MotivoPermitido(in.Motivo) {
		errs = append(errs, "motivo inválido")
	}
	if _, err := time.Parse("2006-01-02", in.FechaLocal); err != nil {
		errs = append(errs, "fecha_local inválida (YYYY-MM-DD)")
	}
	if _, err := time.Parse("15:04", in.HoraLocal); err != nil {
		errs = append(errs, "hora_local inválida (HH:MM)")
	}
	if in.ProductoID == "" && in.Referencia == "" {
		errs = append(errs, "debe enviar producto_id o referencia")
	}
	if len(errs) > 0 {
		return "", domain.NewValidationError(errs...)
	}

	product, err := uc.resolveProduct(ctx, in.ProductoID, in.Referencia)
	if err != nil {
		return "", err
	}

	tipo := in.Tipo
	if tipo == "" {
		tipo = "manual"
	}
	ubicacion := in.Ubicacion
	if ubicacion == "" {
		ubicacion = entity.UbicacionPrincipal
	}

	mov := &entity.Movement{
		ID:         uuid.New().String(),
		ProductoID: product.ID,
		Cantidad:   in.Cantidad,
		Clase:      in.Clase,
		Tipo:       tipo,
		Motivo:     in.Motivo,
		UsuarioID:  principal.UserID,
		FechaLocal: in.FechaLocal,
		HoraLocal:  in.HoraLocal,
		Ubicacion:  ubicacion,
		CreatedAt:  time.Now(),
	}
	if err := uc.movRepo.Create(ctx, mov); err != nil {
		return "", err
	}
	return mov.ID, nil
}

// CreateProduct alta de producto en el catálogo; referencia única.
func (uc *UseCase) CreateProduct(ctx context.Context, principal auth.Principal, in dto.CreateProductRequest) (string, error) {
	if !principal.Valid() {
		return "", domain.ErrUnauthorized
	}
	var errs []string
	if in.Referencia == "" {
		errs = append(errs, "referencia requerida")
	}
	if in.Descripcion == "" {
		errs = append(errs, "descripcion requerida")
	}
	if len(errs) > 0 {
		return "", domain.NewValidationError(errs...)
	}

	caract := in.Caracteristicas
	if len(caract) == 0 {
		caract = []byte("{}")
	}
	product := &entity.Product{
		ID:              uuid.New().String(),
		Referencia:      in.Referencia,
		Descripcion:     in.Descripcion,
		PrecioLista:     in.PrecioLista,
		Caracteristicas: caract,
		CreatedAt:       time.Now(),
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return "", err
	}
	return product.ID, nil
}

// Summary resumen de inventario: stock y disponible por producto.
// excludePedidoID no vacío excluye las reservas de ese pedido.
func (uc *UseCase) Summary(ctx context.Context, excludePedidoID string) ([]dto.InventorySummaryItem, error) {
	rows, err := uc.viewRepo.Summary(ctx, excludePedidoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventorySummaryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventorySummaryItem{
			ID:                 r.Product.ID,
			Referencia:         r.Product.Referencia,
			Descripcion:        r.Product.Descripcion,
			PrecioLista:        r.Product.PrecioLista,
			Caracteristicas:    r.Product.Caracteristicas,
			CantidadActual:     r.CantidadActual,
			CantidadDisponible: r.Disponible,
		})
	}
	return out, nil
}

// Movements kardex del producto: movimientos más recientes primero.
// limit se acota a [1, 100].
func (uc *UseCase) Movements(ctx context.Context, productoID string, limit, offset int) ([]dto.MovementResponse, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	product, err := uc.productRepo.GetByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.movRepo.ListByProduct(ctx, productoID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.MovementResponse{
			ID:         m.ID,
			ProductoID: m.ProductoID,
			Cantidad:   m.Cantidad,
			Clase:      m.Clase,
			Tipo:       m.Tipo,
			Motivo:     m.Motivo,
			FechaLocal: m.FechaLocal,
			HoraLocal:  m.HoraLocal,
			Ubicacion:  m.Ubicacion,
		})
	}
	return out, nil
}

func (uc *UseCase) resolveProduct(ctx context.Context, productoID, referencia string) (*entity.Product, error) {
	var product *entity.Product
	var err error
	if productoID != "" {
		// Un id que no es UUID no puede existir; no llega a la BD.
		if _, err := uuid.Parse(productoID); err != nil {
			return nil, domain.ErrNotFound
		}
		product, err = uc.productRepo.GetByID(ctx, productoID)
	} else {
		product, err = uc.productRepo.GetByReferencia(ctx, referencia)
	}
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
