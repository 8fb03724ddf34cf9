package models

import (
	"time"
)

// DiscussionThread is an alumni-created discussion topic. LastActivityAt
// advances on creation and on every comment, so listing by it yields
// "most recently active first".
type DiscussionThread struct {
	ID             string    `bson:"_id" json:"id"`
	Title          string    `bson:"title" json:"title"`
	Content        string    `bson:"content" json:"content"`
	CreatedBy      string    `bson:"createdBy" json:"createdBy"`
	CreatorName    string    `bson:"creatorName" json:"creatorName"`
	CreatorAvatar  string    `bson:"creatorAvatar,omitempty" json:"creatorAvatar,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	LastActivityAt time.Time `bson:"lastActivityAt" json:"lastActivityAt"`
	CommentsCount  int       `bson:"commentsCount" json:"commentsCount"`
}

// DiscussionComment is a comment owned by a thread (the thread controls its
// comments' lifecycle)
type DiscussionComment struct {
	ID           string    `bson:"_id" json:"id"`
	ThreadID     string    `bson:"threadId" json:"threadId"`
	AuthorID     string    `bson:"authorId" json:"authorId"`
	AuthorName   string    `bson:"authorName" json:"authorName"`
	AuthorAvatar string    `bson:"authorAvatar,omitempty" json:"authorAvatar,omitempty"`
	AuthorRole   Role      `bson:"authorRole" json:"authorRole"`
	Content      string    `bson:"content" json:"content"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateThreadRequest is the payload for starting a discussion thread
type CreateThreadRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=10000"`
}
