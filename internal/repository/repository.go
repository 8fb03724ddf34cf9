// Package repository implements the document-store data access layer.
// Collections are addressed by name; the original nested comment and message
// subcollections are flattened to parent-id-keyed collections.
package repository

import (
	"time"

	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
)

// Collection names
const (
	CollectionUsers              = "users"
	CollectionPosts              = "posts"
	CollectionPostComments       = "postComments"
	CollectionDiscussionThreads  = "discussionThreads"
	CollectionDiscussionComments = "discussionComments"
	CollectionMentorshipRequests = "mentorshipRequests"
	CollectionChats              = "chats"
	CollectionChatMessages       = "chatMessages"
)

// observe records metrics for a document store operation
func observe(collection, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := metrics.MeasureDuration(start)
	metrics.StoreRequestDuration.WithLabelValues(collection, operation, status).Observe(duration)
	metrics.StoreRequestTotal.WithLabelValues(collection, operation, status).Inc()
}
