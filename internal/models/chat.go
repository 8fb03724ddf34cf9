package models

import (
	"sort"
	"strings"
	"time"
)

// ChatSession is a two-party chat between a student and an alumni, created
// lazily on first contact. ParticipantKey is the canonical sorted pair of
// profile ids; a unique index on it guarantees one session per unordered
// pair even under racing first-contacts.
type ChatSession struct {
	ID              string    `bson:"_id" json:"id"`
	ParticipantKey  string    `bson:"participantKey" json:"-"`
	ParticipantIDs  []string  `bson:"participantIds" json:"participantIds"`
	StudentID       string    `bson:"studentId" json:"studentId"`
	AlumniID        string    `bson:"alumniId" json:"alumniId"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	LastMessageAt   time.Time `bson:"lastMessageAt" json:"lastMessageAt"`
	LastMessageText string    `bson:"lastMessageText,omitempty" json:"lastMessageText,omitempty"`
}

// HasParticipant reports whether the profile is one of the two parties
func (s *ChatSession) HasParticipant(profileID string) bool {
	for _, id := range s.ParticipantIDs {
		if id == profileID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the peer of the given profile in the session
func (s *ChatSession) OtherParticipant(profileID string) string {
	for _, id := range s.ParticipantIDs {
		if id != profileID {
			return id
		}
	}
	return ""
}

// CanonicalPairKey sorts two participant ids into one deterministic lookup
// key, so both call orders resolve to the same session
func CanonicalPairKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}

// ChatMessage is a message owned by exactly one chat session
type ChatMessage struct {
	ID        string    `bson:"_id" json:"id"`
	ChatID    string    `bson:"chatId" json:"chatId"`
	SenderID  string    `bson:"senderId" json:"senderId"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SendMessageRequest is the payload for sending a chat message
type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=5000"`
}

// OpenChatRequest is the payload for resolving a chat with another profile
type OpenChatRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}
