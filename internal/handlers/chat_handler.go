package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
)

// ChatHandler handles chat endpoints
type ChatHandler struct {
	service services.ChatServiceInterface
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service services.ChatServiceInterface) *ChatHandler {
	return &ChatHandler{
		service: service,
	}
}

// Open handles POST /api/v1/chats
// Resolves (or lazily creates) the chat with another profile.
func (h *ChatHandler) Open(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.OpenChatRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	chat, err := h.service.OpenChat(c.Request.Context(), session, req.ParticipantID)
	if err != nil {
		respondServiceError(c, err, "Failed to open chat")
		return
	}

	c.JSON(http.StatusOK, chat)
}

// List handles GET /api/v1/chats
func (h *ChatHandler) List(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	chats, err := h.service.ListSessions(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch chats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chats": chats,
		"total": len(chats),
	})
}

// SendMessage handles POST /api/v1/chats/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.SendMessageRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(bindErr), bindErr)
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to send message")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages handles GET /api/v1/chats/:id/messages?limit=
// Messages come back in chronological order.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "Invalid limit parameter", parseErr)
			return
		}
		limit = parsed
	}

	messages, err := h.service.GetMessages(c.Request.Context(), session, c.Param("id"), limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}
