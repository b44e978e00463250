package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/order"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo adaptador del agregado pedido sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, ord *entity.Order) error {
	query := `
		INSERT INTO pedidos
		  (id, status, cliente_id, cliente_nombre, cliente_telefono, direccion_entrega,
		   fecha_entrega, fecha_local, hora_local, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::date, $9::time, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		ord.ID, string(ord.Status), ord.ClienteID, ord.ClienteNombre, ord.ClienteTelefono,
		ord.DireccionEntrega, ord.FechaEntrega, ord.FechaLocal, ord.HoraLocal,
		ord.UsuarioID, ord.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera o nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getHeader(ctx, id, "")
}

// GetForUpdate obtiene la cabecera bloqueando la fila hasta el commit.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getHeader(ctx, id, " FOR UPDATE")
}

func (r *OrderRepo) getHeader(ctx context.Context, id, suffix string) (*entity.Order, error) {
	query := `
		SELECT id, status::text, cliente_id, cliente_nombre, cliente_telefono, direccion_entrega,
		       to_char(fecha_entrega, 'YYYY-MM-DD'), to_char(fecha_local, 'YYYY-MM-DD'),
		       to_char(hora_local, 'HH24:MI'), usuario_id, created_at,
		       aprobado_por, aprobado_at,
		       to_char(aprobado_fecha, 'YYYY-MM-DD'), to_char(aprobado_hora, 'HH24:MI')
		FROM pedidos WHERE id = $1` + suffix
	var o entity.Order
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &status, &o.ClienteID, &o.ClienteNombre, &o.ClienteTelefono, &o.DireccionEntrega,
		&o.FechaEntrega, &o.FechaLocal, &o.HoraLocal, &o.UsuarioID, &o.CreatedAt,
		&o.AprobadoPor, &o.AprobadoAt, &o.AprobadoFecha, &o.AprobadoHora,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	o.Status = order.Status(status)
	return &o, nil
}

// List devuelve cabeceras con items_count y total derivados de las
// líneas, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, limit int) ([]*entity.OrderSummary, error) {
	query := `
		WITH totals AS (
		  SELECT i.pedido_id,
		         sum(i.cantidad) AS items_count,
		         sum(i.cantidad * i.precio) AS total
		  FROM pedido_items i
		  GROUP BY i.pedido_id
		)
		SELECT p.id, p.status::text, p.cliente_nombre, p.cliente_telefono, p.direccion_entrega,
		       to_char(p.fecha_entrega, 'YYYY-MM-DD'), p.created_at,
		       coalesce(t.items_count, 0), coalesce(t.total, 0)
		FROM pedidos p
		LEFT JOIN totals t ON t.pedido_id = p.id
		ORDER BY p.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderSummary
	for rows.Next() {
		var s entity.OrderSummary
		var status string
		if err := rows.Scan(&s.ID, &status, &s.ClienteNombre, &s.ClienteTelefono, &s.DireccionEntrega,
			&s.FechaEntrega, &s.CreatedAt, &s.ItemsCount, &s.Total); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		s.Status = order.Status(status)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el estado (el enum cerrado rechaza etiquetas fuera
// del conjunto). ErrNotFound si el pedido no existe.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	tag, err := r.q.Exec(ctx, `UPDATE pedidos SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update status pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Approve escribe estado + bloque de auditoría en una sola sentencia.
func (r *OrderRepo) Approve(ctx context.Context, ord *entity.Order) error {
	query := `
		UPDATE pedidos
		SET status = $1, aprobado_por = $2, aprobado_at = $3,
		    aprobado_fecha = $4::date, aprobado_hora = $5::time
		WHERE id = $6`
	tag, err := r.q.Exec(ctx, query,
		string(ord.Status), ord.AprobadoPor, ord.AprobadoAt,
		ord.AprobadoFecha, ord.AprobadoHora, ord.ID,
	)
	if err != nil {
		return fmt.Errorf("approve pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina líneas y cabecera. Llamar dentro de una tx para que el
// par sea atómico. ErrNotFound si la cabecera no existe.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM pedido_items WHERE pedido_id = $1`, id); err != nil {
		return fmt.Errorf("delete items pedido: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const itemColumns = `id, pedido_id, producto_id, referencia, descripcion, cantidad, precio, created_at`

// ListItems líneas del pedido en orden de inserción.
func (r *OrderRepo) ListItems(ctx context.Context, pedidoID string) ([]*entity.OrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM pedido_items WHERE pedido_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.PedidoID, &it.ProductoID, &it.Referencia, &it.Descripcion,
			&it.Cantidad, &it.Precio, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetItem línea por id dentro del pedido, o nil.
func (r *OrderRepo) GetItem(ctx context.Context, pedidoID, itemID string) (*entity.OrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM pedido_items WHERE id = $1 AND pedido_id = $2`
	return r.scanItem(r.q.QueryRow(ctx, query, itemID, pedidoID))
}

// GetItemByProduct línea del producto en el pedido (única), o nil.
func (r *OrderRepo) GetItemByProduct(ctx context.Context, pedidoID, productoID string) (*entity.OrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM pedido_items WHERE pedido_id = $1 AND producto_id = $2`
	return r.scanItem(r.q.QueryRow(ctx, query, pedidoID, productoID))
}

// InsertItem agrega una línea nueva.
func (r *OrderRepo) InsertItem(ctx context.Context, item *entity.OrderItem) error {
	query := `
		INSERT INTO pedido_items (id, pedido_id, producto_id, referencia, descripcion, cantidad, precio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.PedidoID, item.ProductoID, item.Referencia, item.Descripcion,
		item.Cantidad, item.Precio, item.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateItem sobrescribe cantidad y precio de la línea.
func (r *OrderRepo) UpdateItem(ctx context.Context, itemID string, cantidad, precio decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE pedido_items SET cantidad = $1, precio = $2 WHERE id = $3`,
		cantidad, precio, itemID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem elimina la línea. ErrNotFound si no existe en el pedido.
func (r *OrderRepo) DeleteItem(ctx context.Context, pedidoID, itemID string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM pedido_items WHERE id = $1 AND pedido_id = $2`,
		itemID, pedidoID,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReservedOf suma las cantidades del producto en pedidos no terminales
// (draft, submitted), excluyendo excludePedidoID si no está vacío.
func (r *OrderRepo) ReservedOf(ctx context.Context, productoID, excludePedidoID string) (decimal.Decimal, error) {
	query := `
		SELECT coalesce(sum(i.cantidad), 0)
		FROM pedido_items i
		JOIN pedidos p ON p.id = i.pedido_id
		WHERE i.producto_id = $1
		  AND p.status IN ('draft','submitted')
		  AND ($2 = '' OR p.id::text <> $2)`
	var reserved decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productoID, excludePedidoID).Scan(&reserved); err != nil {
		return decimal.Zero, fmt.Errorf("reservado producto: %w", err)
	}
	return reserved, nil
}

func (r *OrderRepo) scanItem(row pgx.Row) (*entity.OrderItem, error) {
	var it entity.OrderItem
	err := row.Scan(&it.ID, &it.PedidoID, &it.ProductoID, &it.Referencia, &it.Descripcion,
		&it.Cantidad, &it.Precio, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}
