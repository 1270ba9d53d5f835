package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/service"
)

type viewFunc func(ctx context.Context) (gin.H, error)

// ViewHandler serves the data behind each client tab.
type ViewHandler struct {
	meals    *MealHandler
	feed     *service.CommunityFeed
	sessions *service.SessionService
	profiles *service.ProfileService
	views    map[domain.Tab]viewFunc
}

// NewViewHandler creates a view handler with one view per tab.
func NewViewHandler(meals *MealHandler, feed *service.CommunityFeed, sessions *service.SessionService, profiles *service.ProfileService) *ViewHandler {
	h := &ViewHandler{meals: meals, feed: feed, sessions: sessions, profiles: profiles}
	h.views = map[domain.Tab]viewFunc{
		domain.TabCamera:    h.cameraView,
		domain.TabDiet:      h.dietView,
		domain.TabCommunity: h.communityView,
		domain.TabProfile:   h.profileView,
	}
	return h
}

// Get handles GET /api/v1/views/:tab.
func (h *ViewHandler) Get(c *gin.Context) {
	tab, ok := domain.ParseTab(c.Param("tab"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tab: " + c.Param("tab")})
		return
	}
	view, ok := h.views[tab]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no view for tab: " + tab.String()})
		return
	}
	body, err := view(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	body["tab"] = tab.String()
	c.JSON(http.StatusOK, body)
}

func (h *ViewHandler) cameraView(ctx context.Context) (gin.H, error) {
	records, err := h.meals.meals.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]MealView, len(records))
	for i := range records {
		views[i] = h.meals.toView(i, &records[i])
	}
	body := gin.H{
		"meals": views,
		"slots": domain.MealSlots,
	}
	if draft, ok := h.meals.meals.Draft(); ok {
		body["draft"] = draft
	}
	return body, nil
}

func (h *ViewHandler) dietView(ctx context.Context) (gin.H, error) {
	progress, err := h.meals.meals.Today(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := h.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"session":         sess,
		"progress":        progress,
		"recommendations": service.RecommendedMeals(),
	}, nil
}

func (h *ViewHandler) communityView(ctx context.Context) (gin.H, error) {
	return gin.H{
		"posts":    h.feed.Posts(),
		"filter":   h.feed.Filter(),
		"hashtags": h.feed.SuggestedHashtags(),
	}, nil
}

func (h *ViewHandler) profileView(ctx context.Context) (gin.H, error) {
	view, err := h.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	return gin.H{"profile": view}, nil
}
