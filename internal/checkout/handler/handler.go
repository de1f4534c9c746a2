package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/checkout/service"
	"storefront_backend/internal/checkout/transport"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/httpkit"
)

// Handler handles HTTP requests for checkout.
type Handler struct {
	svc *service.Service
}

// New creates a new checkout handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Checkout processes the selected product IDs.
// POST /products
func (h *Handler) Checkout(c *gin.Context) {
	var req transport.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request").WithDetails(err.Error()))
		return
	}

	err := h.svc.Process(c.Request.Context(), req)

	var conflict *service.InteractionError
	if errors.As(err, &conflict) {
		interactions := conflict.Interactions
		if interactions == nil {
			interactions = [][]string{}
		}
		httpkit.JSON(c, http.StatusConflict, transport.InteractionConflictResponse{
			Message:      conflict.Message,
			Interactions: interactions,
		})
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, true)
}
