// Package checkout provides the checkout bounded context module.
package checkout

import (
	"storefront_backend/internal/checkout/handler"
	"storefront_backend/internal/checkout/ports"
	"storefront_backend/internal/checkout/service"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/internal/orders/commands"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/metrics"
)

// Module is the checkout bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the checkout service to its collaborators.
func NewModule(names ports.NameResolver, checker ports.InteractionChecker, queue commands.Queue, m *metrics.Metrics, log *logger.Logger) *Module {
	svc := service.New(names, checker, queue, m, log)
	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "checkout"
}

// RegisterRoutes mounts checkout routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	if ctx.CheckoutLimiter != nil {
		ctx.Public.POST("/products", ctx.CheckoutLimiter.RateLimit(), m.handler.Checkout)
		return
	}
	ctx.Public.POST("/products", m.handler.Checkout)
}

var _ apphttp.Module = (*Module)(nil)
