package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
	"github.com/mentorconnect/mentorconnect-api/pkg/mongodb"
)

// PostRepository handles post and post comment documents
type PostRepository struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

// NewPostRepository creates a new post repository
func NewPostRepository(client *mongodb.Client) *PostRepository {
	return &PostRepository{
		posts:    client.Collection(CollectionPosts),
		comments: client.Collection(CollectionPostComments),
	}
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	start := time.Now()
	_, err := r.posts.InsertOne(ctx, post)
	observe(CollectionPosts, "insert", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by id
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	start := time.Now()
	var post models.Post
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	observe(CollectionPosts, "findOne", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &post, nil
}

// List retrieves posts newest first, optionally restricted to a category
// and capped at limit (0 means no cap).
func (r *PostRepository) List(ctx context.Context, category string, limit int) ([]*models.Post, error) {
	start := time.Now()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		observe(CollectionPosts, "find", start, err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := []*models.Post{}
	err = cursor.All(ctx, &posts)
	observe(CollectionPosts, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// Update applies partial field updates to a post
func (r *PostRepository) Update(ctx context.Context, id string, set bson.M) error {
	start := time.Now()
	res, err := r.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	observe(CollectionPosts, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a post and its comments
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	observe(CollectionPosts, "deleteOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
	}

	start = time.Now()
	_, err = r.comments.DeleteMany(ctx, bson.M{"postId": id})
	observe(CollectionPostComments, "deleteMany", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete post comments: %w", err)
	}
	return nil
}

// UpdateLikeState writes both the membership list and the counter in a
// single update so they cannot diverge within one toggle.
func (r *PostRepository) UpdateLikeState(ctx context.Context, id string, likedBy []string) error {
	start := time.Now()
	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"likedBy":    likedBy,
			"likesCount": len(likedBy),
		}},
	)
	observe(CollectionPosts, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to update like state: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// AddComment inserts a comment and bumps the post's counter. The two writes
// are not transactional, so the counter is treated as approximate.
func (r *PostRepository) AddComment(ctx context.Context, comment *models.PostComment) error {
	start := time.Now()
	_, err := r.comments.InsertOne(ctx, comment)
	observe(CollectionPostComments, "insert", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert post comment: %w", err)
	}

	start = time.Now()
	_, err = r.posts.UpdateOne(ctx,
		bson.M{"_id": comment.PostID},
		bson.M{"$inc": bson.M{"commentsCount": 1}},
	)
	observe(CollectionPosts, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to bump comment count: %w", err)
	}
	return nil
}

// ListComments retrieves a post's comments, oldest first
func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]*models.PostComment, error) {
	start := time.Now()
	cursor, err := r.comments.Find(ctx,
		bson.M{"postId": postID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		observe(CollectionPostComments, "find", start, err)
		return nil, fmt.Errorf("failed to list post comments: %w", err)
	}

	comments := []*models.PostComment{}
	err = cursor.All(ctx, &comments)
	observe(CollectionPostComments, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode post comments: %w", err)
	}
	return comments, nil
}

// DistinctCategories returns the distinct non-empty post categories
func (r *PostRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	start := time.Now()

	res := r.posts.Distinct(ctx, "category", bson.M{"category": bson.M{"$ne": ""}})

	var categories []string
	err := res.Decode(&categories)
	observe(CollectionPosts, "distinct", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch distinct categories: %w", err)
	}
	return categories, nil
}
