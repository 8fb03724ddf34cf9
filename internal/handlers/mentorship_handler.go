package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
)

// MentorshipHandler handles mentorship request endpoints
type MentorshipHandler struct {
	service services.MentorshipServiceInterface
}

// NewMentorshipHandler creates a new MentorshipHandler
func NewMentorshipHandler(service services.MentorshipServiceInterface) *MentorshipHandler {
	return &MentorshipHandler{
		service: service,
	}
}

// Create handles POST /api/v1/mentorship/requests
func (h *MentorshipHandler) Create(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var payload models.CreateMentorshipRequestPayload
	if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	request, err := h.service.CreateRequest(c.Request.Context(), session, &payload)
	if err != nil {
		if errors.Is(err, services.ErrDuplicatePendingRequest) {
			respondError(c, http.StatusConflict, "A pending request to this mentor already exists", err)
			return
		}
		respondServiceError(c, err, "Failed to create mentorship request")
		return
	}

	c.JSON(http.StatusCreated, request)
}

// List handles GET /api/v1/mentorship/requests
// Students see requests they sent; alumni see requests they received.
func (h *MentorshipHandler) List(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	response, err := h.service.ListForUser(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentorship requests")
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles POST /api/v1/mentorship/requests/:id/status
func (h *MentorshipHandler) UpdateStatus(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	requestID := c.Param("id")
	if requestID == "" {
		respondError(c, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	var payload models.UpdateMentorshipStatusPayload
	if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	request, err := h.service.Respond(c.Request.Context(), session, requestID, &payload)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatusTransition) {
			respondError(c, http.StatusConflict, "Invalid status transition", err)
			return
		}
		respondServiceError(c, err, "Failed to update mentorship request")
		return
	}

	c.JSON(http.StatusOK, request)
}
