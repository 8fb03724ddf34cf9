package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
)

// PostHandler handles post endpoints
type PostHandler struct {
	service services.PostServiceInterface
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service services.PostServiceInterface) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// Create handles POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.CreatePostRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), session, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List handles GET /api/v1/posts
// Optional query params: category (exact match), limit.
func (h *PostHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "Invalid limit parameter", parseErr)
			return
		}
		limit = parsed
	}

	posts, err := h.service.ListPosts(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

// GetByID handles GET /api/v1/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	post, err := h.service.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update handles PUT /api/v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.UpdatePostRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), session, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete post")
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLike handles POST /api/v1/posts/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to toggle like")
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddComment handles POST /api/v1/posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
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

// ListComments handles GET /api/v1/posts/:id/comments
func (h *PostHandler) ListComments(c *gin.Context) {
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
