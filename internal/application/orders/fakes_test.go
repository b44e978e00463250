package orders_test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/orders"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/order"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// Fakes en memoria para ejercitar los casos de uso sin PostgreSQL.
// Replican el comportamiento observable de los adaptadores: nil cuando
// no hay fila, ErrNotFound en updates sin efecto, suma firmada del
// ledger y reservado sobre pedidos abiertos.

type fakeProductRepo struct {
	mu    sync.Mutex
	byID  map[string]*entity.Product
	byRef map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		byID:  make(map[string]*entity.Product),
		byRef: make(map[string]*entity.Product),
	}
}

func (r *fakeProductRepo) add(p *entity.Product) {
	r.byID[p.ID] = p
	r.byRef[p.Referencia] = p
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byRef[p.Referencia]; ok {
		return domain.ErrDuplicate
	}
	r.add(p)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *fakeProductRepo) GetByReferencia(_ context.Context, ref string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byRef[ref], nil
}

func (r *fakeProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) StockOf(_ context.Context, productoID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, m := range r.movements {
		if m.ProductoID != productoID {
			continue
		}
		if m.Clase == entity.ClaseEntrada {
			total = total.Add(m.Cantidad)
		} else {
			total = total.Sub(m.Cantidad)
		}
	}
	return total, nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productoID string, limit, offset int) ([]*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   map[string]*entity.Order
	items    map[string][]*entity.OrderItem // pedidoID -> líneas
	rowLocks map[string]*sync.Mutex         // pedidoID -> bloqueo FOR UPDATE
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[string]*entity.Order),
		items:    make(map[string][]*entity.OrderItem),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

// rowLock devuelve el mutex de la fila del pedido, creándolo si hace falta.
func (r *fakeOrderRepo) rowLock(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	mu, ok := r.rowLocks[id]
	if !ok {
		mu = &sync.Mutex{}
		r.rowLocks[id] = mu
	}
	return mu
}

func (r *fakeOrderRepo) Create(_ context.Context, ord *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ord
	r.orders[ord.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *ord
	return &cp, nil
}

// GetForUpdate fuera de transacción no retiene el bloqueo (igual que un
// SELECT FOR UPDATE con autocommit). La variante transaccional vive en
// txOrderRepo.
func (r *fakeOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) List(_ context.Context, limit int) ([]*entity.OrderSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.OrderSummary
	for _, ord := range r.orders {
		s := &entity.OrderSummary{Order: *ord}
		for _, it := range r.items[ord.ID] {
			s.ItemsCount = s.ItemsCount.Add(it.Cantidad)
			s.Total = s.Total.Add(it.Subtotal())
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	ord.Status = status
	return nil
}

func (r *fakeOrderRepo) Approve(_ context.Context, in *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.orders[in.ID]
	if !ok {
		return domain.ErrNotFound
	}
	ord.Status = in.Status
	ord.AprobadoPor = in.AprobadoPor
	ord.AprobadoAt = in.AprobadoAt
	ord.AprobadoFecha = in.AprobadoFecha
	ord.AprobadoHora = in.AprobadoHora
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	delete(r.items, id)
	return nil
}

func (r *fakeOrderRepo) ListItems(_ context.Context, pedidoID string) ([]*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := append([]*entity.OrderItem(nil), r.items[pedidoID]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *fakeOrderRepo) GetItem(_ context.Context, pedidoID, itemID string) (*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items[pedidoID] {
		if it.ID == itemID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetItemByProduct(_ context.Context, pedidoID, productoID string) (*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items[pedidoID] {
		if it.ProductoID == productoID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) InsertItem(_ context.Context, item *entity.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items[item.PedidoID] {
		if it.ProductoID == item.ProductoID {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.items[item.PedidoID] = append(r.items[item.PedidoID], &cp)
	return nil
}

func (r *fakeOrderRepo) UpdateItem(_ context.Context, itemID string, cantidad, precio decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, items := range r.items {
		for _, it := range items {
			if it.ID == itemID {
				it.Cantidad = cantidad
				it.Precio = precio
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) DeleteItem(_ context.Context, pedidoID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.items[pedidoID]
	for i, it := range items {
		if it.ID == itemID {
			r.items[pedidoID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) ReservedOf(_ context.Context, productoID, excludePedidoID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for pedidoID, items := range r.items {
		if pedidoID == excludePedidoID {
			continue
		}
		ord := r.orders[pedidoID]
		if ord == nil || ord.Status.IsTerminal() {
			continue
		}
		for _, it := range items {
			if it.ProductoID == productoID {
				total = total.Add(it.Cantidad)
			}
		}
	}
	return total, nil
}

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients[id], nil
}

func (r *fakeClientRepo) Search(_ context.Context, _ string, limit int) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// txOrderRepo vista transaccional del fake: GetForUpdate toma el mutex de
// la fila y lo retiene hasta el fin de la transacción, igual que el
// bloqueo FOR UPDATE real. Una segunda transacción sobre el mismo pedido
// se queda esperando y relee el estado que dejó la primera.
type txOrderRepo struct {
	*fakeOrderRepo
	held []*sync.Mutex
}

func (t *txOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	t.fakeOrderRepo.mu.Lock()
	_, ok := t.fakeOrderRepo.orders[id]
	t.fakeOrderRepo.mu.Unlock()
	if !ok {
		return nil, nil
	}
	mu := t.fakeOrderRepo.rowLock(id)
	mu.Lock()
	t.held = append(t.held, mu)
	// Releer después de adquirir el bloqueo: el estado puede haber
	// cambiado mientras se esperaba.
	return t.fakeOrderRepo.GetByID(ctx, id)
}

func (t *txOrderRepo) release() {
	for _, mu := range t.held {
		mu.Unlock()
	}
	t.held = nil
}

// fakeTxRunner entrega los fakes compartidos a la función, envolviendo el
// repo de pedidos en una vista transaccional que libera sus bloqueos de
// fila al terminar (commit o rollback dan igual: los fakes ya son
// atómicos bajo su mutex).
type fakeTxRunner struct {
	orderRepo   *fakeOrderRepo
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
}

var _ orders.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx := &txOrderRepo{fakeOrderRepo: r.orderRepo}
	defer tx.release()
	return fn(tx, r.movRepo, r.productRepo)
}
