// Package catalog provides the catalog bounded context module.
package catalog

import (
	"storefront_backend/internal/catalog/handler"
	"storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/catalog/service"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/logger"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module.
func NewModule(repo repository.Repository, log *logger.Logger) *Module {
	svc := service.New(repo, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.GET("/products", m.handler.ListProducts)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
