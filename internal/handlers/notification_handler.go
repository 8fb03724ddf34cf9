package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/notify"
)

// NotificationHandler serves the in-memory notification feed
type NotificationHandler struct {
	feed *notify.Feed
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(feed *notify.Feed) *NotificationHandler {
	return &NotificationHandler{
		feed: feed,
	}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	notifications := h.feed.List(session.ProfileID)
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        h.feed.UnreadCount(session.ProfileID),
	})
}

// MarkRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if !h.feed.MarkRead(session.ProfileID, c.Param("id")) {
		respondError(c, http.StatusNotFound, "Notification not found", nil)
		return
	}

	c.Status(http.StatusNoContent)
}
