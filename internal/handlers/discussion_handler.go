package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
)

// DiscussionHandler handles discussion thread endpoints
type DiscussionHandler struct {
	service services.DiscussionServiceInterface
}

// NewDiscussionHandler creates a new DiscussionHandler
func NewDiscussionHandler(service services.DiscussionServiceInterface) *DiscussionHandler {
	return &DiscussionHandler{
		service: service,
	}
}

// CreateThread handles POST /api/v1/discussions
func (h *DiscussionHandler) CreateThread(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.CreateThreadRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	thread, err := h.service.CreateThread(c.Request.Context(), session, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create discussion")
		return
	}

	c.JSON(http.StatusCreated, thread)
}

// ListThreads handles GET /api/v1/discussions
// Optional query param: limit.
func (h *DiscussionHandler) ListThreads(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "Invalid limit parameter", parseErr)
			return
		}
		limit = parsed
	}

	threads, err := h.service.ListThreads(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch discussions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threads": threads,
		"total":   len(threads),
	})
}

// GetThread handles GET /api/v1/discussions/:id
func (h *DiscussionHandler) GetThread(c *gin.Context) {
	thread, err := h.service.GetThread(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch discussion")
		return
	}

	c.JSON(http.StatusOK, thread)
}

// AddComment handles POST /api/v1/discussions/:id/comments
func (h *DiscussionHandler) AddComment(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.AddCommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments handles GET /api/v1/discussions/:id/comments
func (h *DiscussionHandler) ListComments(c *gin.Context) {
	comments, err := h.service.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    len(comments),
	})
}
