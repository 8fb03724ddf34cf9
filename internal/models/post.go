package models

import (
	"time"
)

// Post is an alumni-authored post or opportunity.
// Invariant: LikesCount == len(LikedBy); the like toggle moves both in a
// single document update. CommentsCount is maintained by the comment-add
// operation (not recomputed) and may drift by one if a crash lands between
// the comment insert and the counter update.
type Post struct {
	ID               string    `bson:"_id" json:"id"`
	AuthorID         string    `bson:"authorId" json:"authorId"`
	AuthorName       string    `bson:"authorName" json:"authorName"`
	AuthorAvatar     string    `bson:"authorAvatar,omitempty" json:"authorAvatar,omitempty"`
	Title            string    `bson:"title" json:"title"`
	Content          string    `bson:"content" json:"content"`
	Category         string    `bson:"category" json:"category"`
	Tags             []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	ImageURL         string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	VideoURL         string    `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	ExternalLinkURL  string    `bson:"externalLinkUrl,omitempty" json:"externalLinkUrl,omitempty"`
	ExternalLinkText string    `bson:"externalLinkText,omitempty" json:"externalLinkText,omitempty"`
	LikesCount       int       `bson:"likesCount" json:"likesCount"`
	LikedBy          []string  `bson:"likedBy" json:"likedBy"`
	CommentsCount    int       `bson:"commentsCount" json:"commentsCount"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsLikedBy reports whether the user is in the post's liked-by set
func (p *Post) IsLikedBy(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// PostComment is a comment on a post, with author fields denormalized at
// write time
type PostComment struct {
	ID           string    `bson:"_id" json:"id"`
	PostID       string    `bson:"postId" json:"postId"`
	AuthorID     string    `bson:"authorId" json:"authorId"`
	AuthorName   string    `bson:"authorName" json:"authorName"`
	AuthorAvatar string    `bson:"authorAvatar,omitempty" json:"authorAvatar,omitempty"`
	AuthorRole   Role      `bson:"authorRole" json:"authorRole"`
	Content      string    `bson:"content" json:"content"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// CreatePostRequest is the payload for creating a post
type CreatePostRequest struct {
	Title            string   `json:"title" binding:"required,max=200"`
	Content          string   `json:"content" binding:"required,max=10000"`
	Category         string   `json:"category" binding:"required,max=60"`
	Tags             []string `json:"tags" binding:"max=10,dive,max=40"`
	ImageURL         string   `json:"imageUrl" binding:"omitempty,url"`
	VideoURL         string   `json:"videoUrl" binding:"omitempty,url"`
	ExternalLinkURL  string   `json:"externalLinkUrl" binding:"omitempty,url"`
	ExternalLinkText string   `json:"externalLinkText" binding:"max=120"`
}

// UpdatePostRequest is the payload for editing a post. Nil fields are left
// untouched.
type UpdatePostRequest struct {
	Title            *string   `json:"title" binding:"omitempty,max=200"`
	Content          *string   `json:"content" binding:"omitempty,max=10000"`
	Category         *string   `json:"category" binding:"omitempty,max=60"`
	Tags             *[]string `json:"tags" binding:"omitempty,max=10,dive,max=40"`
	ImageURL         *string   `json:"imageUrl" binding:"omitempty,url"`
	VideoURL         *string   `json:"videoUrl" binding:"omitempty,url"`
	ExternalLinkURL  *string   `json:"externalLinkUrl" binding:"omitempty,url"`
	ExternalLinkText *string   `json:"externalLinkText" binding:"omitempty,max=120"`
}

// AddCommentRequest is the payload for commenting on a post or thread
type AddCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// ToggleLikeResult reports the post's like state after a toggle
type ToggleLikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}
