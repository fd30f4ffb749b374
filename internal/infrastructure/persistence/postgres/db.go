package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor is satisfied by both *pgxpool.Pool and pgx.Tx.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB owns the pool shared by the order, course and entitlement stores.
type DB struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	poolCfg, err := cfg.PgxConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("checkout store config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("checkout store pool: %w", err)
	}

	db := &DB{Pool: pool, logger: logger.With("component", "postgres", "database", cfg.Name)}
	if err := db.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("checkout store unreachable at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	db.logger.Info("checkout store ready",
		"host", cfg.Host,
		"max_conns", poolCfg.MaxConns,
		"min_conns", poolCfg.MinConns,
	)
	return db, nil
}

// Ping checks the store with a bounded wait. Used at startup and by /healthz.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.Pool.Ping(ctx)
}

func (db *DB) Close() {
	stat := db.Pool.Stat()
	db.logger.Info("closing checkout store", "acquired_conns", stat.AcquiredConns(), "total_conns", stat.TotalConns())
	db.Pool.Close()
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (db *DB) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
