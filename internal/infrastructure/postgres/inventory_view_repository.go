package postgres

import (
	"context"
	"fmt"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

var _ repository.InventoryViewRepository = (*InventoryViewRepo)(nil)

// InventoryViewRepo resumen de inventario derivado en una sola pasada:
// stock por ledger de movimientos y reservado por pedidos abiertos.
type InventoryViewRepo struct {
	q Querier
}

func NewInventoryViewRepository(q Querier) *InventoryViewRepo {
	return &InventoryViewRepo{q: q}
}

// Summary stock y disponible por producto. excludePedidoID no vacío
// descuenta del reservado las líneas de ese pedido (útil al editarlo).
func (r *InventoryViewRepo) Summary(ctx context.Context, excludePedidoID string) ([]*repository.ProductAvailability, error) {
	query := `
		WITH stock AS (
		  SELECT producto_id,
		         coalesce(sum(CASE WHEN clase = 'entrada' THEN cantidad ELSE -cantidad END), 0) AS cantidad
		  FROM inventario_movimientos
		  GROUP BY producto_id
		),
		reservado AS (
		  SELECT i.producto_id, coalesce(sum(i.cantidad), 0) AS cantidad
		  FROM pedido_items i
		  JOIN pedidos p ON p.id = i.pedido_id
		  WHERE p.status IN ('draft','submitted')
		    AND ($1 = '' OR p.id::text <> $1)
		  GROUP BY i.producto_id
		)
		SELECT pr.id, pr.referencia, pr.descripcion, pr.precio_lista, pr.caracteristicas, pr.created_at,
		       coalesce(s.cantidad, 0) AS cantidad_actual,
		       coalesce(s.cantidad, 0) - coalesce(res.cantidad, 0) AS disponible
		FROM productos pr
		LEFT JOIN stock s ON s.producto_id = pr.id
		LEFT JOIN reservado res ON res.producto_id = pr.id
		ORDER BY pr.referencia ASC`
	rows, err := r.q.Query(ctx, query, excludePedidoID)
	if err != nil {
		return nil, fmt.Errorf("resumen inventario: %w", err)
	}
	defer rows.Close()

	var list []*repository.ProductAvailability
	for rows.Next() {
		var pa repository.ProductAvailability
		if err := rows.Scan(&pa.Product.ID, &pa.Product.Referencia, &pa.Product.Descripcion,
			&pa.Product.PrecioLista, &pa.Product.Caracteristicas, &pa.Product.CreatedAt,
			&pa.CantidadActual, &pa.Disponible); err != nil {
			return nil, fmt.Errorf("scan resumen: %w", err)
		}
		list = append(list, &pa)
	}
	return list, rows.Err()
}
