package clients

import (
	"context"
	"time"

	"github.com/bastiangx/shopsearch/pkg/config"
	"github.com/bastiangx/shopsearch/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPingTimeout = 5 * time.Second

// PgDatabase wraps the pgx pool the catalog is read from.
type PgDatabase struct {
	Pool *pgxpool.Pool
}

// ConnectPostgres opens a pool for cfg.DSN and checks it with a ping.
func ConnectPostgres(ctx context.Context, cfg config.PostgresConfig) (*PgDatabase, error) {
	const op = "PgDatabase.Connect"

	if cfg.DSN == "" {
		return nil, e.Wrap(op+": dsn", e.ErrMissingField)
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	timeout := cfg.ConnectTimeout()
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, e.Wrap(op, err)
	}

	return &PgDatabase{Pool: pool}, nil
}

func (db *PgDatabase) Ping(ctx context.Context) error {
	const op = "PgDatabase.Ping"
	ctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

// Close shuts the pool down.
func (db *PgDatabase) Close(_ context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	return nil
}
