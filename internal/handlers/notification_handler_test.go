package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/notify"
)

func withTestSession(profileID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, &models.Session{
			ProfileID: profileID,
			Email:     "test@example.com",
			Name:      "Test User",
			Role:      models.RoleStudent,
		})
		c.Next()
	}
}

func notificationRouter(feed *notify.Feed, profileID string) *gin.Engine {
	handler := NewNotificationHandler(feed)
	router := gin.New()
	router.Use(withTestSession(profileID))
	router.GET("/notifications", handler.List)
	router.POST("/notifications/:id/read", handler.MarkRead)
	return router
}

func TestNotificationHandler_List(t *testing.T) {
	feed := notify.NewFeed(50)
	feed.Push("student-1", "chat_message", "Ada: hello", "chat-1")
	feed.Push("student-1", "mentorship_update", "Your request was accepted", "")
	feed.Push("someone-else", "chat_message", "not yours", "chat-2")

	router := notificationRouter(feed, "student-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/notifications", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Notifications []models.AppNotification `json:"notifications"`
		Unread        int                      `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Notifications, 2)
	assert.Equal(t, 2, body.Unread)
	// Newest first
	assert.Equal(t, "Your request was accepted", body.Notifications[0].Text)
	assert.Equal(t, "Ada: hello", body.Notifications[1].Text)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	feed := notify.NewFeed(50)
	notification := feed.Push("student-1", "chat_message", "Ada: hello", "chat-1")

	router := notificationRouter(feed, "student-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/notifications/"+notification.ID+"/read", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, feed.UnreadCount("student-1"))
}

func TestNotificationHandler_MarkReadUnknownID(t *testing.T) {
	feed := notify.NewFeed(50)
	router := notificationRouter(feed, "student-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/notifications/nope/read", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
