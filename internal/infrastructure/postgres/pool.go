package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bellinicahuanadevelopment/gestor-textil/pkg/config"
)

// Ajustes del pool. La API es request/response corta: pocas conexiones
// mínimas, reciclaje horario.
const (
	poolMaxConns        = 25
	poolMinConns        = 2
	poolConnLifetime    = time.Hour
	poolConnIdleTime    = 30 * time.Minute
	poolHealthCheckFreq = time.Minute
)

// NewPool abre el pool de conexiones y verifica conectividad con un ping.
// DATABASE_URL tiene prioridad sobre los campos sueltos DB_*. Los hosts
// se resuelven a IPv4: los contenedores del despliegue no enrutan IPv6 y
// algunos proveedores publican solo registros AAAA en el resolver local.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := cfg.DatabaseURL
	if dsn != "" {
		dsn = hostToIPv4(dsn)
	} else {
		c := cfg
		if ip, err := ipv4For(cfg.Host); err == nil {
			c.Host = ip
		}
		dsn = c.DSN()
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	pc.MaxConns = poolMaxConns
	pc.MinConns = poolMinConns
	pc.MaxConnLifetime = poolConnLifetime
	pc.MaxConnIdleTime = poolConnIdleTime
	pc.HealthCheckPeriod = poolHealthCheckFreq

	pc.ConnConfig.DialFunc = dialIPv4

	// NUMERIC/DECIMAL viajan como shopspring/decimal en todas las
	// conexiones del pool. Cantidades y precios nunca pasan por float.
	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("abrir pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// dialIPv4 marca por tcp4 cuando el host tiene dirección IPv4; si no la
// tiene, cae al dial normal y que decida el resolver en runtime.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	d := &net.Dialer{}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := ipv4For(host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// ipv4For devuelve una dirección IPv4 del host. Consulta el resolver del
// sistema y, si este solo devuelve AAAA, reintenta contra un DNS público.
func ipv4For(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s no es IPv4", host)
		}
		return host, nil
	}
	if ips, err := net.LookupIP(host); err == nil {
		for _, ip := range ips {
			if ip.To4() != nil {
				return ip.String(), nil
			}
		}
	}
	r := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{}
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	ips, err := r.LookupIP(context.Background(), "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("sin registros A para %s", host)
	}
	return ips[0].String(), nil
}

// hostToIPv4 sustituye el hostname de la URL de conexión por su IPv4.
// Si no se puede resolver, la URL queda como está.
func hostToIPv4(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	ip, err := ipv4For(u.Hostname())
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}
