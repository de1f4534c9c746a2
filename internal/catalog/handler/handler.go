package handler

import (
	"github.com/gin-gonic/gin"

	"storefront_backend/internal/catalog/service"
	"storefront_backend/platform/httpkit"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
}

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListProducts retrieves all catalog products.
// GET /products
func (h *Handler) ListProducts(c *gin.Context) {
	result, err := h.svc.ListProducts(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
