package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/imaging"
	"github.com/timmy/calsnap/internal/service"
)

// Error messages of the analyze-image endpoint, shown as-is by the client.
const (
	msgNoImage       = "이미지 데이터가 없습니다."
	msgEmptyResponse = "GPT 응답 없음"
	msgUpstream      = "서버 에러: GPT 요청 실패"
	msgBusy          = "이미 다른 사진을 분석 중입니다."
	msgTooLarge      = "이미지가 너무 큽니다."
)

// MealHandler handles photo analysis and meal record endpoints.
type MealHandler struct {
	meals *service.MealService
}

// NewMealHandler creates a new meal handler.
// Parameters:
//   - meals: meal service instance.
// Returns:
//   - *MealHandler: initialized handler.
func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

// AnalyzeImageRequest carries a photo as a data URL or bare base64.
type AnalyzeImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// MealView is a meal record as the client sees it.
type MealView struct {
	Index     int    `json:"index"`
	MealSlot  string `json:"mealSlot"`
	SlotLabel string `json:"slotLabel"`
	domain.NutritionFields
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func (h *MealHandler) toView(index int, r *domain.MealRecord) MealView {
	return MealView{
		Index:           index,
		MealSlot:        string(r.Slot),
		SlotLabel:       r.Slot.Label(),
		NutritionFields: r.Fields(),
		ImageURL:        h.meals.ImageURL(r.ImageKey),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

func (h *MealHandler) bindImage(c *gin.Context) ([]byte, bool) {
	var req AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return nil, false
	}
	image, err := imaging.DecodeDataURL(req.ImageBase64)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return image, true
}

// AnalyzeImage handles POST /analyze-image. It returns the raw model reply and
// keeps no state.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MealHandler) AnalyzeImage(c *gin.Context) {
	var req AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if bodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoImage})
		return
	}
	if strings.TrimSpace(req.ImageBase64) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoImage})
		return
	}
	image, err := imaging.DecodeDataURL(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoImage})
		return
	}

	result, err := h.meals.Describe(c.Request.Context(), image)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"result": result})
	case errors.Is(err, domain.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoImage})
	case errors.Is(err, domain.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": msgBusy})
	case errors.Is(err, domain.ErrEmptyResponse):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgEmptyResponse})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUpstream})
	}
}

// Analyze handles POST /api/v1/meals/analyze.
func (h *MealHandler) Analyze(c *gin.Context) {
	image, ok := h.bindImage(c)
	if !ok {
		return
	}
	draft, err := h.meals.Analyze(c.Request.Context(), image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// GetDraft handles GET /api/v1/meals/draft.
func (h *MealHandler) GetDraft(c *gin.Context) {
	draft, ok := h.meals.Draft()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrInputMissing.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// Confirm handles POST /api/v1/meals/confirm.
func (h *MealHandler) Confirm(c *gin.Context) {
	var req service.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	record, err := h.meals.Confirm(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toView(0, record))
}

// DiscardDraft handles DELETE /api/v1/meals/draft.
func (h *MealHandler) DiscardDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"discarded": h.meals.Discard()})
}

// List handles GET /api/v1/meals.
func (h *MealHandler) List(c *gin.Context) {
	records, err := h.meals.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]MealView, len(records))
	for i := range records {
		views[i] = h.toView(i, &records[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"meals": views,
		"total": len(views),
	})
}

// Remove handles DELETE /api/v1/meals/:index.
func (h *MealHandler) Remove(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid index: " + c.Param("index"),
		})
		return
	}
	record, err := h.meals.Remove(c.Request.Context(), index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": h.toView(index, record)})
}

// Image handles GET /api/v1/images/*key by streaming the stored photo.
func (h *MealHandler) Image(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image key"})
		return
	}
	obj, err := h.meals.OpenImage(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	size := obj.Size
	if size <= 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, contentType, obj.Body, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}
