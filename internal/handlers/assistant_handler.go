package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
)

// AssistantHandler handles FAQ assistant and recommendation endpoints
type AssistantHandler struct {
	service services.AssistantServiceInterface
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(service services.AssistantServiceInterface) *AssistantHandler {
	return &AssistantHandler{
		service: service,
	}
}

// Ask handles POST /api/v1/assistant/ask
// Model failures surface as a friendly answer, so this endpoint only errors
// on bad input.
func (h *AssistantHandler) Ask(c *gin.Context) {
	if _, err := middleware.GetSession(c); err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.AskRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	response, err := h.service.Ask(c.Request.Context(), req.Question)
	if err != nil {
		respondServiceError(c, err, "Failed to answer question")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Recommend handles GET /api/v1/assistant/recommendations
func (h *AssistantHandler) Recommend(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	response, err := h.service.RecommendAlumni(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err, "Failed to recommend mentors")
		return
	}

	c.JSON(http.StatusOK, response)
}
