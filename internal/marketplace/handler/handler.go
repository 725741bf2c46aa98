package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lendingleads_backend/internal/marketplace/service"
	"lendingleads_backend/internal/marketplace/transport"
	"lendingleads_backend/platform/httpkit"
	"lendingleads_backend/platform/validator"
)

// Handler handles HTTP requests for the marketplace.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lead ID"
)

// New creates a new marketplace handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListAvailable returns anonymized listings.
// GET /api/v1/marketplace/leads
func (h *Handler) ListAvailable(c *gin.Context) {
	var req transport.ListListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListAvailable(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Purchase buys a lead with credits.
// POST /api/v1/marketplace/leads/:id/purchase
func (h *Handler) Purchase(c *gin.Context) {
	brokerID, ok := httpkit.GetBrokerID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.Purchase(c.Request.Context(), brokerID, leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// MyLeads returns the broker's purchased leads.
// GET /api/v1/marketplace/purchases
func (h *Handler) MyLeads(c *gin.Context) {
	brokerID, ok := httpkit.GetBrokerID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	result, err := h.svc.MyLeads(c.Request.Context(), brokerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Stats summarizes marketplace inventory and sales (admin only).
// GET /api/v1/admin/marketplace/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
