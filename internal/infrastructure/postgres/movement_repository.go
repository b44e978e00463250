package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo adaptador del ledger sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: el ledger nunca se actualiza ni se borra.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create agrega un movimiento inmutable al ledger.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO inventario_movimientos
		  (id, producto_id, cantidad, clase, tipo, motivo, usuario_id, fecha_local, hora_local, ubicacion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9::time, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductoID, m.Cantidad, m.Clase, m.Tipo, m.Motivo,
		m.UsuarioID, m.FechaLocal, m.HoraLocal, m.Ubicacion, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// StockOf deriva el stock físico del producto sumando movimientos
// firmados: entradas positivas, salidas negativas.
func (r *MovementRepo) StockOf(ctx context.Context, productoID string) (decimal.Decimal, error) {
	query := `
		SELECT coalesce(sum(case when clase = 'entrada' then cantidad else -cantidad end), 0)
		FROM inventario_movimientos
		WHERE producto_id = $1`
	var stock decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productoID).Scan(&stock); err != nil {
		return decimal.Zero, fmt.Errorf("stock producto: %w", err)
	}
	return stock, nil
}

// ListByProduct lista movimientos del producto, más recientes primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productoID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, producto_id, cantidad, clase, tipo, motivo, usuario_id,
		       to_char(fecha_local, 'YYYY-MM-DD'), to_char(hora_local, 'HH24:MI'), ubicacion, created_at
		FROM inventario_movimientos
		WHERE producto_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Cantidad, &m.Clase, &m.Tipo, &m.Motivo,
			&m.UsuarioID, &m.FechaLocal, &m.HoraLocal, &m.Ubicacion, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
