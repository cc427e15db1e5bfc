package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ai-kiosk/api/internal/order"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the session table. Applied by cmd/seed.
const Schema = `
CREATE TABLE IF NOT EXISTS kiosk_sessions (
    id uuid PRIMARY KEY,
    state jsonb NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT now()
)`

// Postgres persists snapshots in a single jsonb-state table, for
// deployments where the kiosk process may restart mid-conversation.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Connect opens a pgx pool and verifies connectivity with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

func (p *Postgres) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	const q = `SELECT state FROM kiosk_sessions WHERE id = $1`

	var state []byte
	if err := p.pool.QueryRow(ctx, q, id).Scan(&state); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var o order.Order
	if err := json.Unmarshal(state, &o); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &o, nil
}

func (p *Postgres) Put(ctx context.Context, id uuid.UUID, o *order.Order) error {
	const q = `
INSERT INTO kiosk_sessions (id, state, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`

	state, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if _, err := p.pool.Exec(ctx, q, id, state); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM kiosk_sessions WHERE id = $1`

	if _, err := p.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
