package notify_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/notify"
)

func TestFeed_PushAndList(t *testing.T) {
	feed := notify.NewFeed(10)

	feed.Push("user-1", models.NotificationChatMessage, "first", "chat-1")
	feed.Push("user-1", models.NotificationMentorshipUpdate, "second", "")
	feed.Push("user-2", models.NotificationChatMessage, "other user", "chat-2")

	list := feed.List("user-1")
	assert.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text, "newest first")
	assert.Equal(t, "first", list[1].Text)
	assert.Equal(t, "chat-1", list[1].ChatID)

	assert.Len(t, feed.List("user-2"), 1)
	assert.Empty(t, feed.List("user-3"))
}

func TestFeed_EvictsOldestAtCap(t *testing.T) {
	feed := notify.NewFeed(3)

	for i := 0; i < 5; i++ {
		feed.Push("user-1", models.NotificationChatMessage, fmt.Sprintf("msg-%d", i), "")
	}

	list := feed.List("user-1")
	assert.Len(t, list, 3)
	assert.Equal(t, "msg-4", list[0].Text)
	assert.Equal(t, "msg-2", list[2].Text, "oldest two evicted")
}

func TestFeed_MarkRead(t *testing.T) {
	feed := notify.NewFeed(10)

	n := feed.Push("user-1", models.NotificationChatMessage, "hello", "chat-1")
	assert.Equal(t, 1, feed.UnreadCount("user-1"))

	assert.True(t, feed.MarkRead("user-1", n.ID))
	assert.Equal(t, 0, feed.UnreadCount("user-1"))
	assert.True(t, feed.List("user-1")[0].IsRead)

	assert.False(t, feed.MarkRead("user-1", "nope"))
	assert.False(t, feed.MarkRead("user-2", n.ID), "scoped to recipient")
}

func TestFeed_ListReturnsCopies(t *testing.T) {
	feed := notify.NewFeed(10)

	n := feed.Push("user-1", models.NotificationChatMessage, "hello", "chat-1")

	list := feed.List("user-1")
	assert.False(t, list[0].IsRead)

	feed.MarkRead("user-1", n.ID)
	assert.False(t, list[0].IsRead, "earlier snapshot must not see later mutations")
	assert.True(t, feed.List("user-1")[0].IsRead)
}

func TestFeed_DefaultCap(t *testing.T) {
	feed := notify.NewFeed(0)

	for i := 0; i < 60; i++ {
		feed.Push("user-1", models.NotificationChatMessage, fmt.Sprintf("msg-%d", i), "")
	}
	assert.Len(t, feed.List("user-1"), 50)
}
