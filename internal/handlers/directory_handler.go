package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
)

// DirectoryHandler handles alumni directory endpoints
type DirectoryHandler struct {
	service services.DirectoryServiceInterface
}

// NewDirectoryHandler creates a new DirectoryHandler
func NewDirectoryHandler(service services.DirectoryServiceInterface) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
	}
}

// ListAlumni handles GET /api/v1/alumni
// Supports ?industry=, ?skills= (repeatable) and ?search= query filters.
func (h *DirectoryHandler) ListAlumni(c *gin.Context) {
	var filter models.DirectoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid filter parameters", err)
		return
	}

	alumni, err := h.service.ListAlumni(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch alumni directory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alumni": alumni,
		"total":  len(alumni),
	})
}

// Industries handles GET /api/v1/alumni/industries
func (h *DirectoryHandler) Industries(c *gin.Context) {
	industries, err := h.service.Industries(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch industries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"industries": industries})
}
