// Package handler provides HTTP handlers for recommendations.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nerve_engine_backend/internal/recommendations/service"
	"nerve_engine_backend/platform/httpkit"
)

const (
	msgInvalidClientID        = "invalid client id"
	msgRecommendationNotFound = "no recommendation stored for primary interest"
)

// Handler handles HTTP requests for recommendations.
type Handler struct {
	svc *service.Service
}

// New creates a new recommendations handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the recommendation routes on the group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/process-customer/:clientId", h.ProcessCustomer)
	group.POST("/customers/:clientId/recommendation", h.RecommendForInterest)
	group.GET("/customers/:clientId/recommendation", h.GetStoredRecommendation)
}

// ProcessCustomer runs the full pipeline for one client: bureau resolution,
// regeneration of every category, and lookup for the declared interest.
// POST /api/v1/process-customer/:clientId
func (h *Handler) ProcessCustomer(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidClientID, nil)
		return
	}

	result, err := h.svc.Process(c.Request.Context(), clientID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RecommendForInterest computes and stores a recommendation for the client's
// primary interest only.
// POST /api/v1/customers/:clientId/recommendation
func (h *Handler) RecommendForInterest(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidClientID, nil)
		return
	}

	result, err := h.svc.RecommendForInterestByID(c.Request.Context(), clientID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetStoredRecommendation returns the stored fields for the client's primary
// interest without recomputation.
// GET /api/v1/customers/:clientId/recommendation
func (h *Handler) GetStoredRecommendation(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidClientID, nil)
		return
	}

	result, err := h.svc.LookupStoredByID(c.Request.Context(), clientID)
	if httpkit.HandleError(c, err) {
		return
	}
	if result == nil {
		httpkit.Error(c, http.StatusNotFound, msgRecommendationNotFound, nil)
		return
	}
	httpkit.OK(c, result)
}
