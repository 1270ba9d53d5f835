package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/service"
)

// SessionHandler handles the active session and profile endpoints.
type SessionHandler struct {
	sessions *service.SessionService
	profiles *service.ProfileService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *service.SessionService, profiles *service.ProfileService) *SessionHandler {
	return &SessionHandler{sessions: sessions, profiles: profiles}
}

// GetSession handles GET /api/v1/session.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": sess,
		"goalBounds": gin.H{
			"min":  domain.MinGoalCalories,
			"max":  domain.MaxGoalCalories,
			"step": domain.GoalCaloriesStep,
		},
	})
}

// UpdateSession handles PUT /api/v1/session.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var req service.SessionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.sessions.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// GetProfile handles GET /api/v1/profile.
func (h *SessionHandler) GetProfile(c *gin.Context) {
	view, err := h.profiles.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateProfile handles PUT /api/v1/profile.
func (h *SessionHandler) UpdateProfile(c *gin.Context) {
	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.profiles.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListRecommendations handles GET /api/v1/recommendations.
func (h *SessionHandler) ListRecommendations(c *gin.Context) {
	meals := service.RecommendedMeals()
	c.JSON(http.StatusOK, gin.H{
		"recommendations": meals,
		"total":           len(meals),
	})
}

// GetRecommendation handles GET /api/v1/recommendations/:index.
func (h *SessionHandler) GetRecommendation(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index: " + c.Param("index")})
		return
	}
	meal, ok := service.RecommendedMealAt(index)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}
