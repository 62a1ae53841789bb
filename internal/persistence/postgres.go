package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/user-console/internal/config"
	"github.com/spec-kit/user-console/internal/domain"
)

const snapshotTableDDL = `
CREATE TABLE IF NOT EXISTS user_snapshots (
    storage_key TEXT PRIMARY KEY,
    payload     JSONB NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresAdapter persists the snapshot in a key/payload table over a pgx
// connection pool.
type PostgresAdapter struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresAdapter establishes a connection pool and ensures the
// snapshot table exists.
func NewPostgresAdapter(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*PostgresAdapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DSN == "" {
		return nil, errors.New("POSTGRES_DSN not provided")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, snapshotTableDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure snapshot table: %w", err)
	}

	logger.Info("connected to postgres")
	return &PostgresAdapter{pool: pool, logger: logger}, nil
}

// Load fetches and decodes the snapshot row for the key.
func (a *PostgresAdapter) Load(ctx context.Context, key string) ([]domain.User, bool, error) {
	const query = `SELECT payload FROM user_snapshots WHERE storage_key=$1`

	var payload []byte
	err := a.pool.QueryRow(ctx, query, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select snapshot %s: %w", key, err)
	}

	var users []domain.User
	if err := json.Unmarshal(payload, &users); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return users, true, nil
}

// Save upserts the snapshot row for the key.
func (a *PostgresAdapter) Save(ctx context.Context, key string, users []domain.User) error {
	const query = `
        INSERT INTO user_snapshots (storage_key, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (storage_key)
        DO UPDATE SET payload=EXCLUDED.payload, updated_at=NOW()`

	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	if _, err := a.pool.Exec(ctx, query, key, payload); err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", key, err)
	}
	return nil
}

// Close releases pool resources.
func (a *PostgresAdapter) Close() {
	if a != nil && a.pool != nil {
		a.pool.Close()
	}
}
