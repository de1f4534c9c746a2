// Package ports defines the interfaces the checkout domain needs from other
// bounded contexts and outbound services. Adapters in internal/adapters
// implement them so checkout never imports catalog or the HTTP client directly.
package ports

import "context"

// NameResolver maps product IDs to product names. Unknown IDs are dropped.
type NameResolver interface {
	ResolveProductNames(ctx context.Context, ids []int32) ([]string, error)
}

// InteractionVerdict is the outcome of an interaction check.
type InteractionVerdict struct {
	Message      string
	Interactions [][]string
	// Blocked is true when the service returned an interactions field at all.
	Blocked bool
}

// InteractionChecker submits medication names for an interaction check.
type InteractionChecker interface {
	CheckInteractions(ctx context.Context, medications []string) (InteractionVerdict, error)
}
