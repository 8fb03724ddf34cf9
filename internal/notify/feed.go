// Package notify keeps a small in-memory notification feed per user.
// Entries are best-effort: they do not survive a restart and are capped per
// user, evicting the oldest first.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
)

// Feed is a capped per-user notification store
type Feed struct {
	mu         sync.RWMutex
	byUser     map[string][]*models.AppNotification
	maxPerUser int
}

// NewFeed creates a feed keeping at most maxPerUser entries per recipient
func NewFeed(maxPerUser int) *Feed {
	if maxPerUser <= 0 {
		maxPerUser = 50
	}
	return &Feed{
		byUser:     make(map[string][]*models.AppNotification),
		maxPerUser: maxPerUser,
	}
}

// Push appends a notification for the recipient, evicting the oldest entry
// when the cap is reached. chatID may be empty for non-chat notifications.
func (f *Feed) Push(recipientID string, kind models.NotificationType, text, chatID string) *models.AppNotification {
	n := &models.AppNotification{
		ID:        uuid.NewString(),
		Type:      kind,
		Text:      text,
		ChatID:    chatID,
		Timestamp: time.Now().UTC(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries := append(f.byUser[recipientID], n)
	if len(entries) > f.maxPerUser {
		entries = entries[len(entries)-f.maxPerUser:]
	}
	f.byUser[recipientID] = entries

	copied := *n
	return &copied
}

// List returns copies of the recipient's notifications, newest first.
// Copies keep callers from observing concurrent MarkRead mutations while
// they serialize the result.
func (f *Feed) List(recipientID string) []models.AppNotification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries := f.byUser[recipientID]
	out := make([]models.AppNotification, len(entries))
	for i, n := range entries {
		out[len(entries)-1-i] = *n
	}
	return out
}

// MarkRead flags a single notification as read. Returns false when the
// notification does not exist for that recipient.
func (f *Feed) MarkRead(recipientID, notificationID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.byUser[recipientID] {
		if n.ID == notificationID {
			n.IsRead = true
			return true
		}
	}
	return false
}

// UnreadCount returns the number of unread notifications for a recipient
func (f *Feed) UnreadCount(recipientID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	count := 0
	for _, n := range f.byUser[recipientID] {
		if !n.IsRead {
			count++
		}
	}
	return count
}
