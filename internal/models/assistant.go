package models

import (
	"time"
)

// AskRequest is the payload for the FAQ assistant
type AskRequest struct {
	Question string `json:"question" binding:"required,max=1000"`
}

// AskResponse is the assistant's structured answer
type AskResponse struct {
	Answer string `json:"answer"`
}

// RecommendationResponse lists recommended alumni names, split from the
// model's comma-separated output
type RecommendationResponse struct {
	RecommendedNames []string `json:"recommendedNames"`
}

// NotificationType classifies an in-memory notification
type NotificationType string

const (
	NotificationChatMessage      NotificationType = "chat_message"
	NotificationMentorshipUpdate NotificationType = "mentorship_update"
)

// AppNotification is a client-session notification. It is never persisted;
// each user's feed lives in memory and is capped, evicting the oldest.
type AppNotification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Text      string           `json:"text"`
	ChatID    string           `json:"chatId,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	IsRead    bool             `json:"isRead"`
}
