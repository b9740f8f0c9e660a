package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the slice of pgxpool behavior the readiness check needs; handlers
// take this instead of the concrete pool.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// PoolSettings sizes a connection pool for one binary.
type PoolSettings struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// APIPoolSettings sizes the interactive server's pool. Handlers hold a
// connection only for the span of one request, but many requests run at once.
func APIPoolSettings() PoolSettings {
	return PoolSettings{
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
	}
}

// DaemonPoolSettings sizes the tick daemon's pool. Sweeps run one at a time
// and issue short claim transactions, so a small pool is enough.
func DaemonPoolSettings() PoolSettings {
	return PoolSettings{
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
	}
}

// NewPool opens a pgx pool with the given sizing and verifies connectivity
// with a bounded ping before handing it back.
func NewPool(ctx context.Context, connString string, settings PoolSettings) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBadConnString, err)
	}

	config.MaxConns = settings.MaxConns
	config.MinConns = settings.MinConns
	config.MaxConnLifetime = settings.MaxConnLifetime
	config.MaxConnIdleTime = settings.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgPoolOpenFailed, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgPingFailed, err)
	}

	slog.Default().Info(LogMsgDatabaseConnected,
		"max_conns", settings.MaxConns, "min_conns", settings.MinConns)
	return pool, nil
}
