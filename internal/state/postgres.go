package state

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPoolSize = 4

// PostgresStore implements Store using pgxpool.
//
// PostgresStore is covered by the integration-tagged tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to PostgreSQL and verifies the connection.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

func (s *PostgresStore) IsNotified(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM notified WHERE product_id = $1)", id,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("querying notified %s: %w", id, err)
	}
	return exists, nil
}

func (s *PostgresStore) MarkNotified(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx,
		"INSERT INTO notified (product_id) VALUES ($1) ON CONFLICT (product_id) DO NOTHING",
		id,
	); err != nil {
		return fmt.Errorf("marking %s notified: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) ResetAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM notified"); err != nil {
		return fmt.Errorf("resetting notified: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT product_id FROM notified ORDER BY product_id")
	if err != nil {
		return nil, fmt.Errorf("listing notified: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning notified row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notified rows: %w", err)
	}
	return ids, nil
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
