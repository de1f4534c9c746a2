package adapters

import (
	"context"

	catsvc "storefront_backend/internal/catalog/service"
	"storefront_backend/internal/checkout/ports"
)

// CatalogNameResolver adapts the catalog service for the checkout domain.
type CatalogNameResolver struct {
	svc *catsvc.Service
}

// NewCatalogNameResolver creates a new name resolver adapter.
func NewCatalogNameResolver(svc *catsvc.Service) *CatalogNameResolver {
	return &CatalogNameResolver{svc: svc}
}

// ResolveProductNames returns one name per product whose ID is in ids.
// Unknown IDs are silently omitted.
func (a *CatalogNameResolver) ResolveProductNames(ctx context.Context, ids []int32) ([]string, error) {
	return a.svc.ResolveProductNames(ctx, ids)
}

var _ ports.NameResolver = (*CatalogNameResolver)(nil)
