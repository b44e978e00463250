package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea tablas y tipos si no existen. Arranque idempotente,
// no es una herramienta de migración. El enum order_status es un
// conjunto cerrado: las cuatro etiquetas canónicas y nada más.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create extension if not exists pgcrypto`,

		`do $do$
		begin
		  if not exists (select 1 from pg_type where typname = 'order_status') then
		    create type public.order_status as enum ('draft','submitted','approved','cancelled');
		  end if;
		end
		$do$`,

		`create table if not exists public.usuarios (
		  id uuid primary key default gen_random_uuid(),
		  email text unique not null,
		  nombre_completo text not null,
		  password_hash text not null,
		  rol text not null default 'seller',
		  created_at timestamptz not null default now()
		)`,

		`create table if not exists public.productos (
		  id uuid primary key default gen_random_uuid(),
		  referencia text unique not null,
		  descripcion text not null,
		  precio_lista numeric(12,2) not null default 0,
		  caracteristicas jsonb not null default '{}'::jsonb,
		  created_at timestamptz not null default now()
		)`,

		`create table if not exists public.inventario_movimientos (
		  id uuid primary key default gen_random_uuid(),
		  producto_id uuid not null references public.productos(id) on delete cascade,
		  cantidad numeric(12,2) not null check (cantidad > 0),
		  clase text not null check (clase in ('entrada','salida')),
		  tipo text not null,
		  motivo text not null,
		  usuario_id uuid not null,
		  fecha_local date not null,
		  hora_local time not null,
		  ubicacion text not null default 'principal',
		  created_at timestamptz not null default now()
		)`,

		`create table if not exists public.clientes (
		  id uuid primary key default gen_random_uuid(),
		  nombre text not null,
		  direccion text,
		  direccion_entrega text,
		  email text,
		  telefono text,
		  persona_contacto text,
		  ciudad text,
		  pais text,
		  created_at timestamptz not null default now()
		)`,

		`create index if not exists idx_clientes_nombre on public.clientes (lower(nombre))`,

		`create table if not exists public.pedidos (
		  id uuid primary key default gen_random_uuid(),
		  status public.order_status not null default 'draft'::public.order_status,
		  cliente_id uuid references public.clientes(id) on delete set null,
		  cliente_nombre text not null,
		  cliente_telefono text not null,
		  direccion_entrega text not null,
		  fecha_entrega date not null,
		  fecha_local date not null default current_date,
		  hora_local time not null default current_time,
		  usuario_id uuid not null,
		  created_at timestamptz not null default now(),
		  aprobado_por uuid,
		  aprobado_at timestamptz,
		  aprobado_fecha date,
		  aprobado_hora time
		)`,

		`create table if not exists public.pedido_items (
		  id uuid primary key default gen_random_uuid(),
		  pedido_id uuid not null references public.pedidos(id) on delete cascade,
		  producto_id uuid not null references public.productos(id) on delete restrict,
		  referencia text not null,
		  descripcion text not null,
		  cantidad numeric(12,2) not null check (cantidad > 0),
		  precio numeric(12,2) not null,
		  created_at timestamptz not null default now(),
		  unique (pedido_id, producto_id)
		)`,

		`create index if not exists idx_movimientos_producto on public.inventario_movimientos (producto_id)`,
		`create index if not exists idx_pedido_items_producto on public.pedido_items (producto_id)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
