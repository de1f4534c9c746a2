// Package repository persists orders recorded after a successful checkout.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Order is a recorded checkout.
type Order struct {
	ID           uuid.UUID `db:"id"`
	ProductNames []string  `db:"product_names"`
	CreatedAt    time.Time `db:"created_at"`
}

// Writer stores orders.
type Writer interface {
	InsertOrder(ctx context.Context, id uuid.UUID, productNames []string) (Order, error)
}

// Repo implements Writer on a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new orders repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Writer.
var _ Writer = (*Repo)(nil)

// InsertOrder inserts an order row naming the given products.
func (r *Repo) InsertOrder(ctx context.Context, id uuid.UUID, productNames []string) (Order, error) {
	query := `
		INSERT INTO orders (id, product_names)
		VALUES ($1, $2)
		RETURNING id, product_names, created_at`

	if productNames == nil {
		productNames = []string{}
	}

	var order Order
	if err := r.pool.QueryRow(ctx, query, id, productNames).Scan(
		&order.ID, &order.ProductNames, &order.CreatedAt,
	); err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}
