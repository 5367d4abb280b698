package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/akura-order-service/internal/domain"
)

type PostgresOrderRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresOrderRepo(pool *pgxpool.Pool) *PostgresOrderRepo {
	return &PostgresOrderRepo{Pool: pool}
}

// Upsert stores the full payload and keeps the status column in step with
// it so listings can filter without unpacking jsonb.
func (r *PostgresOrderRepo) Upsert(ctx context.Context, id string, raw []byte, status domain.OrderStatus) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO orders(order_id, payload, status) VALUES($1, $2, $3)
        ON CONFLICT (order_id) DO UPDATE SET payload = EXCLUDED.payload, status = EXCLUDED.status`,
		id, raw, string(status))
	return err
}

// UpdateStatus applies a transition with a compare-and-swap on the status
// column. Zero rows affected means another writer got there first.
func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id string, raw []byte, from, to domain.OrderStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE orders SET payload = $2, status = $3
        WHERE order_id = $1 AND status = $4`, id, raw, string(to), string(from))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *PostgresOrderRepo) LoadAll(ctx context.Context, fn func(id string, raw []byte) error) error {
	rows, err := r.Pool.Query(ctx, `SELECT order_id, payload FROM orders`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return err
		}
		if err := fn(id, raw); err != nil {
			return err
		}
	}
	return rows.Err()
}

var _ domain.OrderRepository = (*PostgresOrderRepo)(nil)

// EnsureSchema creates the required tables when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS orders (
  order_id text PRIMARY KEY,
  payload jsonb NOT NULL,
  status text NOT NULL DEFAULT 'pending'
);
CREATE INDEX IF NOT EXISTS orders_status_idx ON orders(status);`)
	return err
}
