package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	model        string
	storesPhotos bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(model string, storesPhotos bool) *HealthHandler {
	return &HealthHandler{model: model, storesPhotos: storesPhotos}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"model":         h.model,
		"stores_photos": h.storesPhotos,
	})
}
