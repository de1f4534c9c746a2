package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListProducts retrieves every product with its price rounded to cents.
func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, href, ROUND(price::numeric, 2)::text AS price, description, image_src, image_alt
		FROM products`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		var price string
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Href, &price,
			&product.Description, &product.ImageSrc, &product.ImageAlt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		product.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price of product %d: %w", product.ID, err)
		}
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, nil
}

// GetProductNamesByIDs retrieves product names for the given IDs.
func (r *Repo) GetProductNamesByIDs(ctx context.Context, ids []int32) ([]string, error) {
	query := `SELECT name FROM products WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get product names by ids: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, len(ids))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan product name: %w", err)
		}
		names = append(names, name)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate product names: %w", rows.Err())
	}

	return names, nil
}
