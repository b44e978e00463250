package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo adaptador de clientes sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, nombre, direccion, direccion_entrega, email, telefono, persona_contacto, ciudad, pais, created_at`

// Los campos opcionales son nullable en la tabla; se leen con coalesce
// para mapearlos a cadenas vacías.
const clientSelect = `id, nombre, coalesce(direccion, ''), coalesce(direccion_entrega, ''),
	coalesce(email, ''), coalesce(telefono, ''), coalesce(persona_contacto, ''),
	coalesce(ciudad, ''), coalesce(pais, ''), created_at`

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clientes (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Direccion, c.DireccionEntrega, c.Email,
		c.Telefono, c.PersonaContacto, c.Ciudad, c.Pais, c.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene el cliente o nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientSelect + ` FROM clientes WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Nombre, &c.Direccion, &c.DireccionEntrega, &c.Email,
		&c.Telefono, &c.PersonaContacto, &c.Ciudad, &c.Pais, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Search busca por subcadena (case-insensitive) en los campos de
// contacto. q vacío lista los más recientes.
func (r *ClientRepo) Search(ctx context.Context, q string, limit int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientSelect + `
		FROM clientes
		WHERE ($1 = '' OR
		       lower(nombre) LIKE $2 OR
		       lower(coalesce(email, '')) LIKE $2 OR
		       lower(coalesce(telefono, '')) LIKE $2 OR
		       lower(coalesce(persona_contacto, '')) LIKE $2 OR
		       lower(coalesce(ciudad, '')) LIKE $2 OR
		       lower(coalesce(pais, '')) LIKE $2)
		ORDER BY nombre ASC
		LIMIT $3`
	pattern := "%" + strings.ToLower(q) + "%"
	rows, err := r.q.Query(ctx, query, q, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search clientes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Direccion, &c.DireccionEntrega, &c.Email,
			&c.Telefono, &c.PersonaContacto, &c.Ciudad, &c.Pais, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
