package adapters

import (
	"context"
	"errors"

	"storefront_backend/internal/checkout/ports"
	"storefront_backend/internal/interactions/client"
	"storefront_backend/platform/apperr"
)

// InteractionChecker adapts the interaction-check HTTP client to checkout.
type InteractionChecker struct {
	client *client.Client
}

// NewInteractionChecker creates a new interaction checker adapter.
func NewInteractionChecker(c *client.Client) *InteractionChecker {
	return &InteractionChecker{client: c}
}

// CheckInteractions submits medications and maps the response to a verdict.
func (a *InteractionChecker) CheckInteractions(ctx context.Context, medications []string) (ports.InteractionVerdict, error) {
	resp, err := a.client.Check(ctx, medications)
	if errors.Is(err, client.ErrUnavailable) {
		return ports.InteractionVerdict{}, apperr.Wrap(apperr.KindUnavailable, "interaction service unavailable", err)
	}
	if err != nil {
		return ports.InteractionVerdict{}, err
	}
	return ports.InteractionVerdict{
		Message:      resp.Message,
		Interactions: resp.Interactions,
		Blocked:      resp.HasInteractions(),
	}, nil
}

var _ ports.InteractionChecker = (*InteractionChecker)(nil)
