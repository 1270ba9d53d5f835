package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/calsnap/internal/service"
)

// CommunityHandler handles community feed endpoints.
type CommunityHandler struct {
	feed *service.CommunityFeed
}

// NewCommunityHandler creates a new community handler.
func NewCommunityHandler(feed *service.CommunityFeed) *CommunityHandler {
	return &CommunityHandler{feed: feed}
}

// CommentRequest is the body of a new comment.
type CommentRequest struct {
	Text string `json:"text"`
}

// FilterRequest selects a tag or a search. A tag wins when both are sent.
type FilterRequest struct {
	Tag    string `json:"tag"`
	Search string `json:"search"`
}

func parsePostID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}

// ListPosts handles GET /api/v1/posts.
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	posts := h.feed.Posts()
	c.JSON(http.StatusOK, gin.H{
		"posts":  posts,
		"total":  len(posts),
		"filter": h.feed.Filter(),
	})
}

// CreatePost handles POST /api/v1/posts.
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	var req service.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.feed.CreatePost(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ToggleLike handles POST /api/v1/posts/:id/like.
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	post, err := h.feed.ToggleLike(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// AddComment handles POST /api/v1/posts/:id/comments.
func (h *CommunityHandler) AddComment(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.feed.AddComment(c.Request.Context(), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// SetFilter handles PUT /api/v1/posts/filter.
func (h *CommunityHandler) SetFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Tag != "" {
		h.feed.SetTagFilter(req.Tag)
	} else {
		h.feed.SetSearch(req.Search)
	}
	h.ListPosts(c)
}

// ClearFilter handles DELETE /api/v1/posts/filter.
func (h *CommunityHandler) ClearFilter(c *gin.Context) {
	h.feed.ClearFilter()
	h.ListPosts(c)
}

// Hashtags handles GET /api/v1/hashtags.
func (h *CommunityHandler) Hashtags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hashtags": h.feed.SuggestedHashtags()})
}
