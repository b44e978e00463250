// seed crea el esquema y un usuario administrador inicial.
//
// Uso: go run ./cmd/seed -email admin@example.com -password <pass> [-nombre "Admin"] [-rol admin]
// Lee la conexión de las mismas variables de entorno que el API
// (DATABASE_URL o DB_HOST/DB_PORT/...). Si el email ya existe,
// actualiza password y rol.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/infrastructure/postgres"
	"github.com/bellinicahuanadevelopment/gestor-textil/pkg/config"
)

func main() {
	email := flag.String("email", "", "email del usuario")
	password := flag.String("password", "", "contraseña en claro (se guarda el hash bcrypt)")
	nombre := flag.String("nombre", "Administrador", "nombre completo")
	rol := flag.String("rol", string(auth.RoleAdmin), "rol: viewer, seller, manager o admin")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "email y password son requeridos")
		flag.Usage()
		os.Exit(1)
	}
	role, err := auth.ParseRole(*rol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rol inválido: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "preparar esquema: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	query := `
		INSERT INTO usuarios (email, nombre_completo, password_hash, rol)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		  SET password_hash = EXCLUDED.password_hash, rol = EXCLUDED.rol
		RETURNING id`
	var id string
	if err := pool.QueryRow(ctx, query, *email, *nombre, string(hash), string(role)).Scan(&id); err != nil {
		fmt.Fprintf(os.Stderr, "insertar usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("usuario %s listo (id %s, rol %s)\n", *email, id, role)
}
