package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/calsnap/internal/service"
)

// ProgressHandler handles daily progress endpoints.
type ProgressHandler struct {
	meals *service.MealService
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(meals *service.MealService) *ProgressHandler {
	return &ProgressHandler{meals: meals}
}

// Today handles GET /api/v1/progress/today.
func (h *ProgressHandler) Today(c *gin.Context) {
	progress, err := h.meals.Today(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// History handles GET /api/v1/progress/history?days=N.
func (h *ProgressHandler) History(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(service.DefaultHistoryDays)))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'days' must be a positive integer",
		})
		return
	}
	history, err := h.meals.History(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"days":  history,
		"total": len(history),
	})
}
