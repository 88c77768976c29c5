package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triphaven/internal/domain"
	"triphaven/internal/service"
)

// CatalogHandler handles HTTP requests for the trip catalog.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListTrips handles GET /trip
func (h *CatalogHandler) ListTrips(c *gin.Context) {
	trips, err := h.catalogService.ListTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if trips == nil {
		trips = []domain.Trip{}
	}
	respondJSON(c, http.StatusOK, trips)
}

// GetTrip handles GET /view-trips/:id
// A missing trip is answered with 200 and a null body.
func (h *CatalogHandler) GetTrip(c *gin.Context) {
	trip, err := h.catalogService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, trip)
}
