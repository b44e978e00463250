package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/dto"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/orders"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

var (
	sellerPrincipal = auth.Principal{
		UserID: "00000000-0000-0000-0000-0000000000a1",
		Email:  "vendedor@acme.test",
		Role:   auth.RoleSeller,
	}
	managerPrincipal = auth.Principal{
		UserID: "00000000-0000-0000-0000-0000000000b2",
		Email:  "gerente@acme.test",
		Role:   auth.RoleManager,
	}
)

type env struct {
	uc          *orders.UseCase
	orderRepo   *fakeOrderRepo
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
	clientRepo  *fakeClientRepo
}

func newEnv() *env {
	orderRepo := newFakeOrderRepo()
	movRepo := &fakeMovementRepo{}
	productRepo := newFakeProductRepo()
	clientRepo := newFakeClientRepo()
	runner := &fakeTxRunner{orderRepo: orderRepo, movRepo: movRepo, productRepo: productRepo}
	return &env{
		uc:          orders.NewUseCase(runner, orderRepo, clientRepo),
		orderRepo:   orderRepo,
		movRepo:     movRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
	}
}

// addProduct registra un producto y devuelve su id.
func (e *env) addProduct(t *testing.T, referencia string, precio int64) string {
	t.Helper()
	p := &entity.Product{
		ID:              uuid.New().String(),
		Referencia:      referencia,
		Descripcion:     "Tela " + referencia,
		PrecioLista:     decimal.NewFromInt(precio),
		Caracteristicas: []byte("{}"),
		CreatedAt:       time.Now(),
	}
	require.NoError(t, e.productRepo.Create(context.Background(), p))
	return p.ID
}

// addStock agrega movimientos al ledger. Negativo = salida.
func (e *env) addStock(t *testing.T, productoID string, qty int64) {
	t.Helper()
	clase := entity.ClaseEntrada
	if qty < 0 {
		clase = entity.ClaseSalida
		qty = -qty
	}
	m := &entity.Movement{
		ID:         uuid.New().String(),
		ProductoID: productoID,
		Cantidad:   decimal.NewFromInt(qty),
		Clase:      clase,
		Tipo:       "manual",
		Motivo:     "ajuste",
		UsuarioID:  sellerPrincipal.UserID,
		FechaLocal: "2026-08-01",
		HoraLocal:  "09:00",
		Ubicacion:  entity.UbicacionPrincipal,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, e.movRepo.Create(context.Background(), m))
}

// startOrder crea un pedido draft listo para recibir líneas.
func (e *env) startOrder(t *testing.T) string {
	t.Helper()
	id, err := e.uc.Start(context.Background(), sellerPrincipal, dto.StartOrderRequest{
		ClienteNombre:    "Confecciones Sur",
		ClienteTelefono:  "3001234567",
		DireccionEntrega: "Calle 10 #4-21",
		FechaEntrega:     "2026-09-15",
	})
	require.NoError(t, err)
	return id
}

// upsert agrega o sobrescribe la línea del producto con la cantidad dada.
func (e *env) upsert(pedidoID, productoID string, qty int64) (string, error) {
	return e.uc.UpsertLine(context.Background(), sellerPrincipal, pedidoID, dto.UpsertItemRequest{
		ProductoID: productoID,
		Cantidad:   decimal.NewFromInt(qty),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Start
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_CreaPedidoEnDraft(t *testing.T) {
	e := newEnv()
	id := e.startOrder(t)

	ord, err := e.orderRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, ord)
	assert.Equal(t, order.StatusDraft, ord.Status)
	assert.Equal(t, sellerPrincipal.UserID, ord.UsuarioID)
	assert.NotEmpty(t, ord.FechaLocal, "fecha_local por defecto debe poblarse")
	assert.NotEmpty(t, ord.HoraLocal)
}

func TestStart_ValidacionAcumulaMensajes(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Start(context.Background(), sellerPrincipal, dto.StartOrderRequest{
		FechaEntrega: "15/09/2026", // formato inválido
	})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Len(t, vErr.Messages, 4, "nombre, teléfono, dirección y fecha deben reportarse juntos")
}

func TestStart_DerivaContactoDelCliente(t *testing.T) {
	e := newEnv()
	client := &entity.Client{
		ID:               uuid.New().String(),
		Nombre:           "Almacén Central",
		Telefono:         "3017654321",
		DireccionEntrega: "Cra 45 #12-30",
		CreatedAt:        time.Now(),
	}
	require.NoError(t, e.clientRepo.Create(context.Background(), client))

	id, err := e.uc.Start(context.Background(), sellerPrincipal, dto.StartOrderRequest{
		ClienteID:    client.ID,
		FechaEntrega: "2026-09-15",
	})
	require.NoError(t, err)

	ord, _ := e.orderRepo.GetByID(context.Background(), id)
	assert.Equal(t, "Almacén Central", ord.ClienteNombre)
	assert.Equal(t, "3017654321", ord.ClienteTelefono)
	assert.Equal(t, "Cra 45 #12-30", ord.DireccionEntrega)
	require.NotNil(t, ord.ClienteID)
	assert.Equal(t, client.ID, *ord.ClienteID)
}

func TestStart_ClienteInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Start(context.Background(), sellerPrincipal, dto.StartOrderRequest{
		ClienteID:    uuid.New().String(),
		FechaEntrega: "2026-09-15",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard de disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: stock 100 + 20 − 30 = 90. Otro pedido abierto
// reserva 40, así que el disponible para un pedido nuevo es 50.
func TestUpsertLine_GuardDeDisponibilidad(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-001", 25000)
	e.addStock(t, productoID, 100)
	e.addStock(t, productoID, 20)
	e.addStock(t, productoID, -30)

	otro := e.startOrder(t)
	_, err := e.upsert(otro, productoID, 40)
	require.NoError(t, err, "reservar 40 de 90 debe pasar")

	pedido := e.startOrder(t)

	// 60 > 50 disponibles → CapacityError con el disponible real.
	_, err = e.upsert(pedido, productoID, 60)
	require.Error(t, err)
	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.True(t, capErr.Available.Equal(decimal.NewFromInt(50)),
		"el error debe transportar el disponible (50), fue %s", capErr.Available)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// El rechazo no debe dejar línea escrita.
	items, _ := e.orderRepo.ListItems(context.Background(), pedido)
	assert.Empty(t, items)

	// Exactamente el disponible → pasa y el disponible queda en 0.
	_, err = e.upsert(pedido, productoID, 50)
	require.NoError(t, err)
	reserved, _ := e.orderRepo.ReservedOf(context.Background(), productoID, "")
	assert.True(t, reserved.Equal(decimal.NewFromInt(90)))
}

// La reserva del propio pedido se excluye: subir 40 → 45 compara 45
// contra stock − reservas ajenas, no contra el disponible que ya
// descuenta los 40 propios.
func TestUpdateLine_ExcluyeReservaPropia(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-002", 18000)
	e.addStock(t, productoID, 90)

	otro := e.startOrder(t)
	_, err := e.upsert(otro, productoID, 40)
	require.NoError(t, err)

	pedido := e.startOrder(t)
	itemID, err := e.upsert(pedido, productoID, 40)
	require.NoError(t, err)

	// Disponible para este pedido: 90 − 40 (ajenos) = 50 ≥ 45.
	qty := decimal.NewFromInt(45)
	err = e.uc.UpdateLine(context.Background(), sellerPrincipal, pedido, itemID, dto.UpdateItemRequest{
		Cantidad: &qty,
	})
	require.NoError(t, err)

	item, _ := e.orderRepo.GetItem(context.Background(), pedido, itemID)
	assert.True(t, item.Cantidad.Equal(qty))

	// 51 ya supera el disponible.
	qty = decimal.NewFromInt(51)
	err = e.uc.UpdateLine(context.Background(), sellerPrincipal, pedido, itemID, dto.UpdateItemRequest{
		Cantidad: &qty,
	})
	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.True(t, capErr.Available.Equal(decimal.NewFromInt(50)))
}

func TestUpsertLine_SobrescribeLineaExistente(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-003", 12000)
	e.addStock(t, productoID, 100)

	pedido := e.startOrder(t)
	first, err := e.upsert(pedido, productoID, 10)
	require.NoError(t, err)
	second, err := e.upsert(pedido, productoID, 25)
	require.NoError(t, err)

	assert.Equal(t, first, second, "mismo producto debe reutilizar la línea")
	items, _ := e.orderRepo.ListItems(context.Background(), pedido)
	require.Len(t, items, 1)
	assert.True(t, items[0].Cantidad.Equal(decimal.NewFromInt(25)),
		"la cantidad se sobrescribe, no se acumula")
}

func TestUpsertLine_PrecioPorDefectoEsPrecioLista(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-004", 33500)
	e.addStock(t, productoID, 10)

	pedido := e.startOrder(t)
	itemID, err := e.upsert(pedido, productoID, 5)
	require.NoError(t, err)

	item, _ := e.orderRepo.GetItem(context.Background(), pedido, itemID)
	assert.True(t, item.Precio.Equal(decimal.NewFromInt(33500)))

	// Precio explícito se respeta.
	precio := decimal.NewFromInt(30000)
	_, err = e.uc.UpsertLine(context.Background(), sellerPrincipal, pedido, dto.UpsertItemRequest{
		ProductoID: productoID,
		Cantidad:   decimal.NewFromInt(5),
		Precio:     &precio,
	})
	require.NoError(t, err)
	item, _ = e.orderRepo.GetItem(context.Background(), pedido, itemID)
	assert.True(t, item.Precio.Equal(precio))
}

func TestDeleteLine_LiberaReserva(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-005", 9000)
	e.addStock(t, productoID, 50)

	pedido := e.startOrder(t)
	itemID, err := e.upsert(pedido, productoID, 50)
	require.NoError(t, err)

	// Todo el stock reservado: otro pedido no puede tomar nada.
	otro := e.startOrder(t)
	_, err = e.upsert(otro, productoID, 1)
	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.True(t, capErr.Available.Equal(decimal.Zero))

	require.NoError(t, e.uc.DeleteLine(context.Background(), sellerPrincipal, pedido, itemID))

	_, err = e.upsert(otro, productoID, 50)
	assert.NoError(t, err, "borrar la línea debe devolver el disponible")
}

func TestUpsertLine_ValidacionDeEntrada(t *testing.T) {
	e := newEnv()
	pedido := e.startOrder(t)

	_, err := e.uc.UpsertLine(context.Background(), sellerPrincipal, pedido, dto.UpsertItemRequest{
		ProductoID: uuid.New().String(),
		Cantidad:   decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad 0 debe rechazarse")

	_, err = e.uc.UpsertLine(context.Background(), sellerPrincipal, pedido, dto.UpsertItemRequest{
		Cantidad: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin producto_id ni referencia")

	_, err = e.uc.UpsertLine(context.Background(), sellerPrincipal, pedido, dto.UpsertItemRequest{
		ProductoID: uuid.New().String(),
		Cantidad:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = e.uc.UpsertLine(context.Background(), sellerPrincipal, pedido, dto.UpsertItemRequest{
		ProductoID: "no-es-uuid",
		Cantidad:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto_id que no es UUID no puede existir")
}

func TestStart_ClienteIDNoUUID(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Start(context.Background(), sellerPrincipal, dto.StartOrderRequest{
		ClienteID:    "no-es-uuid",
		FechaEntrega: "2026-09-15",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_EsIdempotente(t *testing.T) {
	e := newEnv()
	pedido := e.startOrder(t)

	require.NoError(t, e.uc.Submit(context.Background(), sellerPrincipal, pedido))
	require.NoError(t, e.uc.Submit(context.Background(), sellerPrincipal, pedido),
		"repetir submit debe ser un no-op")

	ord, _ := e.orderRepo.GetByID(context.Background(), pedido)
	assert.Equal(t, order.StatusSubmitted, ord.Status)
}

func TestApprove_SellaAuditoria(t *testing.T) {
	e := newEnv()
	pedido := e.startOrder(t)
	require.NoError(t, e.uc.Submit(context.Background(), sellerPrincipal, pedido))

	resp, err := e.uc.Approve(context.Background(), managerPrincipal, pedido)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, managerPrincipal.UserID, resp.AprobadoPor)
	assert.NotEmpty(t, resp.AprobadoFecha)
	assert.NotEmpty(t, resp.AprobadoHora)

	ord, _ := e.orderRepo.GetByID(context.Background(), pedido)
	assert.Equal(t, order.StatusApproved, ord.Status)
	require.NotNil(t, ord.AprobadoPor)
	assert.Equal(t, managerPrincipal.UserID, *ord.AprobadoPor)
	assert.NotNil(t, ord.AprobadoAt)
}

func TestApprove_SegundaVezEsConflicto(t *testing.T) {
	e := newEnv()
	pedido := e.startOrder(t)

	_, err := e.uc.Approve(context.Background(), managerPrincipal, pedido)
	require.NoError(t, err, "aprobar directo desde draft es legal")

	_, err = e.uc.Approve(context.Background(), managerPrincipal, pedido)
	assert.ErrorIs(t, err, domain.ErrConflict, "re-aprobar debe fallar sin escribir")

	ord, _ := e.orderRepo.GetByID(context.Background(), pedido)
	assert.Equal(t, order.StatusApproved, ord.Status)
}

func TestApprove_ConcurrentesSoloUnaGana(t *testing.T) {
	// Dos aprobaciones simultáneas del mismo pedido: el bloqueo de la
	// cabecera serializa las transacciones, la segunda ve approved y
	// devuelve Conflict en lugar de sobrescribir la auditoría.
	e := newEnv()
	pedido := e.startOrder(t)
	require.NoError(t, e.uc.Submit(context.Background(), sellerPrincipal, pedido))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.uc.Approve(context.Background(), managerPrincipal, pedido)
		}(i)
	}
	wg.Wait()

	oks, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			oks++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, oks, "exactamente una aprobación debe tener éxito")
	assert.Equal(t, 1, conflicts, "la otra debe devolver Conflict")

	ord, err := e.orderRepo.GetByID(context.Background(), pedido)
	require.NoError(t, err)
	assert.Equal(t, order.StatusApproved, ord.Status)
	require.NotNil(t, ord.AprobadoPor)
	assert.Equal(t, managerPrincipal.UserID, *ord.AprobadoPor)
}

func TestCancel_ConcurrenteConApprove(t *testing.T) {
	// Cancelación y aprobación compitiendo por el mismo pedido: gana una
	// sola y el pedido nunca sale del estado terminal que dejó la ganadora.
	e := newEnv()
	pedido := e.startOrder(t)
	require.NoError(t, e.uc.Submit(context.Background(), sellerPrincipal, pedido))

	var wg sync.WaitGroup
	var errApprove, errCancel error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errApprove = e.uc.Approve(context.Background(), managerPrincipal, pedido)
	}()
	go func() {
		defer wg.Done()
		errCancel = e.uc.Cancel(context.Background(), sellerPrincipal, pedido)
	}()
	wg.Wait()

	ord, err := e.orderRepo.GetByID(context.Background(), pedido)
	require.NoError(t, err)
	require.True(t, ord.Status.IsTerminal())
	if errApprove == nil {
		assert.Equal(t, order.StatusApproved, ord.Status)
		assert.ErrorIs(t, errCancel, domain.ErrConflict)
	} else {
		assert.Equal(t, order.StatusCancelled, ord.Status)
		assert.NoError(t, errCancel)
		assert.ErrorIs(t, errApprove, domain.ErrConflict)
	}
}

func TestUpsertLine_ConcurrenteConApprove(t *testing.T) {
	// Una mutación de línea compitiendo con la aprobación: si la línea
	// entró, lo hizo antes de aprobar; si la aprobación ganó, la línea
	// se rechaza con Conflict y no se escribe.
	e := newEnv()
	productoID := e.addProduct(t, "REF-CC1", 10000)
	e.addStock(t, productoID, 50)
	pedido := e.startOrder(t)
	require.NoError(t, e.uc.Submit(context.Background(), sellerPrincipal, pedido))

	var wg sync.WaitGroup
	var errUpsert, errApprove error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errUpsert = e.upsert(pedido, productoID, 5)
	}()
	go func() {
		defer wg.Done()
		_, errApprove = e.uc.Approve(context.Background(), managerPrincipal, pedido)
	}()
	wg.Wait()

	require.NoError(t, errApprove, "nada impide aprobar en este escenario")
	items, err := e.orderRepo.ListItems(context.Background(), pedido)
	require.NoError(t, err)
	if errUpsert == nil {
		assert.Len(t, items, 1, "la línea entró antes de la aprobación")
	} else {
		assert.ErrorIs(t, errUpsert, domain.ErrConflict)
		assert.Empty(t, items, "una línea rechazada no debe quedar escrita")
	}
}

func TestApprove_SellerProhibido(t *testing.T) {
	e := newEnv()
	pedido := e.startOrder(t)

	_, err := e.uc.Approve(context.Background(), sellerPrincipal, pedido)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	ord, _ := e.orderRepo.GetByID(context.Background(), pedido)
	assert.Equal(t, order.StatusDraft, ord.Status, "el estado no debe cambiar")
}

func TestCancel_LiberaReservas(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-006", 15000)
	e.addStock(t, productoID, 30)

	pedido := e.startOrder(t)
	_, err := e.upsert(pedido, productoID, 30)
	require.NoError(t, err)
	require.NoError(t, e.uc.Submit(context.Background(), sellerPrincipal, pedido))
	require.NoError(t, e.uc.Cancel(context.Background(), sellerPrincipal, pedido))

	// Las líneas de un pedido cancelado ya no reservan.
	reserved, _ := e.orderRepo.ReservedOf(context.Background(), productoID, "")
	assert.True(t, reserved.IsZero())

	otro := e.startOrder(t)
	_, err = e.upsert(otro, productoID, 30)
	assert.NoError(t, err)
}

func TestCancel_DesdeTerminalEsConflicto(t *testing.T) {
	e := newEnv()
	pedido := e.startOrder(t)
	_, err := e.uc.Approve(context.Background(), managerPrincipal, pedido)
	require.NoError(t, err)

	err = e.uc.Cancel(context.Background(), sellerPrincipal, pedido)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLineas_CongeladasEnEstadoTerminal(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-007", 20000)
	e.addStock(t, productoID, 100)

	pedido := e.startOrder(t)
	itemID, err := e.upsert(pedido, productoID, 10)
	require.NoError(t, err)
	_, err = e.uc.Approve(context.Background(), managerPrincipal, pedido)
	require.NoError(t, err)

	_, err = e.upsert(pedido, productoID, 20)
	assert.ErrorIs(t, err, domain.ErrConflict, "upsert sobre pedido aprobado")

	qty := decimal.NewFromInt(5)
	err = e.uc.UpdateLine(context.Background(), sellerPrincipal, pedido, itemID, dto.UpdateItemRequest{Cantidad: &qty})
	assert.ErrorIs(t, err, domain.ErrConflict, "update sobre pedido aprobado")

	err = e.uc.DeleteLine(context.Background(), sellerPrincipal, pedido, itemID)
	assert.ErrorIs(t, err, domain.ErrConflict, "delete sobre pedido aprobado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado, detalle y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_DevuelveCabeceraYLineas(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-008", 10000)
	e.addStock(t, productoID, 20)

	pedido := e.startOrder(t)
	_, err := e.upsert(pedido, productoID, 5)
	require.NoError(t, err)

	detail, err := e.uc.Get(context.Background(), pedido)
	require.NoError(t, err)
	assert.Equal(t, pedido, detail.Pedido.ID)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "REF-008", detail.Items[0].Referencia)
	assert.Equal(t, "Tela REF-008", detail.Items[0].Descripcion,
		"la descripción se desnormaliza desde el producto")
}

func TestGet_PedidoInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Get(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_AgregaTotales(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-009", 1000)
	e.addStock(t, productoID, 100)

	pedido := e.startOrder(t)
	_, err := e.upsert(pedido, productoID, 8)
	require.NoError(t, err)

	list, err := e.uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].ItemsCount.Equal(decimal.NewFromInt(8)))
	assert.True(t, list[0].Total.Equal(decimal.NewFromInt(8000)))
}

func TestDelete_EliminaYLiberaReservas(t *testing.T) {
	e := newEnv()
	productoID := e.addProduct(t, "REF-010", 5000)
	e.addStock(t, productoID, 10)

	pedido := e.startOrder(t)
	_, err := e.upsert(pedido, productoID, 10)
	require.NoError(t, err)

	require.NoError(t, e.uc.Delete(context.Background(), sellerPrincipal, pedido))

	ord, _ := e.orderRepo.GetByID(context.Background(), pedido)
	assert.Nil(t, ord)
	reserved, _ := e.orderRepo.ReservedOf(context.Background(), productoID, "")
	assert.True(t, reserved.IsZero())

	err = e.uc.Delete(context.Background(), sellerPrincipal, pedido)
	assert.ErrorIs(t, err, domain.ErrNotFound, "segundo delete debe fallar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Principal
// ──────────────────────────────────────────────────────────────────────────────

func TestOperaciones_RequierenPrincipal(t *testing.T) {
	e := newEnv()
	anon := auth.Principal{}

	_, err := e.uc.Start(context.Background(), anon, dto.StartOrderRequest{FechaEntrega: "2026-09-15"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.uc.UpsertLine(context.Background(), anon, "x", dto.UpsertItemRequest{Cantidad: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = e.uc.Submit(context.Background(), anon, "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.uc.Approve(context.Background(), anon, "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
