package debugstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists raw outputs to PostgreSQL. Writes are best-effort:
// errors are swallowed after notifying the optional error hook, because debug
// persistence must never fail a request.
type PostgresStore struct {
	pool    *pgxpool.Pool
	OnError func(error)
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Save upserts the payload for (request_id, stage). Later attempts at the same
// stage overwrite earlier ones, which is what postmortems want.
func (s *PostgresStore) Save(ctx context.Context, requestID, stage string, payload []byte) {
	if requestID == "" {
		return
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO raw_outputs (id, request_id, stage, payload, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (request_id, stage)
		 DO UPDATE SET payload = EXCLUDED.payload, created_at = NOW()`,
		uuid.New(), requestID, stage, payload,
	)
	if err != nil && s.OnError != nil {
		s.OnError(fmt.Errorf("failed to save raw output %s/%s: %w", requestID, stage, err))
	}
}
