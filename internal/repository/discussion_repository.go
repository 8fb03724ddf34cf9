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

// DiscussionRepository handles discussion thread and comment documents
type DiscussionRepository struct {
	threads  *mongo.Collection
	comments *mongo.Collection
}

// NewDiscussionRepository creates a new discussion repository
func NewDiscussionRepository(client *mongodb.Client) *DiscussionRepository {
	return &DiscussionRepository{
		threads:  client.Collection(CollectionDiscussionThreads),
		comments: client.Collection(CollectionDiscussionComments),
	}
}

// CreateThread inserts a new discussion thread
func (r *DiscussionRepository) CreateThread(ctx context.Context, thread *models.DiscussionThread) error {
	start := time.Now()
	_, err := r.threads.InsertOne(ctx, thread)
	observe(CollectionDiscussionThreads, "insert", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert discussion thread: %w", err)
	}
	return nil
}

// GetThread retrieves a thread by id
func (r *DiscussionRepository) GetThread(ctx context.Context, id string) (*models.DiscussionThread, error) {
	start := time.Now()
	var thread models.DiscussionThread
	err := r.threads.FindOne(ctx, bson.M{"_id": id}).Decode(&thread)
	observe(CollectionDiscussionThreads, "findOne", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("discussion thread %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch discussion thread: %w", err)
	}
	return &thread, nil
}

// ListThreads retrieves threads ordered by most recent activity, capped at
// limit (0 means all)
func (r *DiscussionRepository) ListThreads(ctx context.Context, limit int) ([]*models.DiscussionThread, error) {
	start := time.Now()

	opts := options.Find().SetSort(bson.D{{Key: "lastActivityAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.threads.Find(ctx, bson.M{}, opts)
	if err != nil {
		observe(CollectionDiscussionThreads, "find", start, err)
		return nil, fmt.Errorf("failed to list discussion threads: %w", err)
	}

	threads := []*models.DiscussionThread{}
	err = cursor.All(ctx, &threads)
	observe(CollectionDiscussionThreads, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode discussion threads: %w", err)
	}
	return threads, nil
}

// AddComment inserts a comment and touches the parent thread's activity
// timestamp and counter in one update.
func (r *DiscussionRepository) AddComment(ctx context.Context, comment *models.DiscussionComment) error {
	start := time.Now()
	_, err := r.comments.InsertOne(ctx, comment)
	observe(CollectionDiscussionComments, "insert", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert discussion comment: %w", err)
	}

	start = time.Now()
	res, err := r.threads.UpdateOne(ctx,
		bson.M{"_id": comment.ThreadID},
		bson.M{
			"$inc": bson.M{"commentsCount": 1},
			"$set": bson.M{"lastActivityAt": comment.CreatedAt},
		},
	)
	observe(CollectionDiscussionThreads, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to touch discussion thread: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("discussion thread %s: %w", comment.ThreadID, apperrors.ErrNotFound)
	}
	return nil
}

// ListComments retrieves a thread's comments, oldest first
func (r *DiscussionRepository) ListComments(ctx context.Context, threadID string) ([]*models.DiscussionComment, error) {
	start := time.Now()
	cursor, err := r.comments.Find(ctx,
		bson.M{"threadId": threadID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		observe(CollectionDiscussionComments, "find", start, err)
		return nil, fmt.Errorf("failed to list discussion comments: %w", err)
	}

	comments := []*models.DiscussionComment{}
	err = cursor.All(ctx, &comments)
	observe(CollectionDiscussionComments, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode discussion comments: %w", err)
	}
	return comments, nil
}

// RecentTitles returns the titles of the most recently active threads
func (r *DiscussionRepository) RecentTitles(ctx context.Context, limit int) ([]string, error) {
	start := time.Now()
	cursor, err := r.threads.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "lastActivityAt", Value: -1}}).
			SetLimit(int64(limit)).
			SetProjection(bson.M{"title": 1}),
	)
	if err != nil {
		observe(CollectionDiscussionThreads, "find", start, err)
		return nil, fmt.Errorf("failed to list recent threads: %w", err)
	}

	var docs []struct {
		Title string `bson:"title"`
	}
	err = cursor.All(ctx, &docs)
	observe(CollectionDiscussionThreads, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode recent threads: %w", err)
	}

	titles := make([]string, 0, len(docs))
	for _, d := range docs {
		titles = append(titles, d.Title)
	}
	return titles, nil
}
