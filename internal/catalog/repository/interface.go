package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product as stored in the products table.
type Product struct {
	ID          int32           `db:"id"`
	Name        string          `db:"name"`
	Href        string          `db:"href"`
	Price       decimal.Decimal `db:"price"`
	Description string          `db:"description"`
	ImageSrc    string          `db:"image_src"`
	ImageAlt    string          `db:"image_alt"`
}

// Repository defines catalog storage operations.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	// GetProductNamesByIDs returns the name of every product whose ID is in ids.
	// Unknown IDs are skipped and each matching product appears once.
	GetProductNamesByIDs(ctx context.Context, ids []int32) ([]string, error)
}
