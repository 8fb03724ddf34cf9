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

// MentorshipRepository handles mentorship request documents
type MentorshipRepository struct {
	col *mongo.Collection
}

// NewMentorshipRepository creates a new mentorship repository
func NewMentorshipRepository(client *mongodb.Client) *MentorshipRepository {
	return &MentorshipRepository{
		col: client.Collection(CollectionMentorshipRequests),
	}
}

// Create inserts a new mentorship request
func (r *MentorshipRepository) Create(ctx context.Context, request *models.MentorshipRequest) error {
	start := time.Now()
	_, err := r.col.InsertOne(ctx, request)
	observe(CollectionMentorshipRequests, "insert", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert mentorship request: %w", err)
	}
	return nil
}

// GetByID retrieves a mentorship request by id
func (r *MentorshipRepository) GetByID(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	start := time.Now()
	var request models.MentorshipRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	observe(CollectionMentorshipRequests, "findOne", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("mentorship request %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch mentorship request: %w", err)
	}
	return &request, nil
}

// GetPendingBetween looks for an open request from a student to an alumnus.
// Used to reject duplicate outstanding requests for the same pair.
func (r *MentorshipRepository) GetPendingBetween(ctx context.Context, studentID, alumniID string) (*models.MentorshipRequest, error) {
	start := time.Now()
	var request models.MentorshipRequest
	err := r.col.FindOne(ctx, bson.M{
		"studentId": studentID,
		"alumniId":  alumniID,
		"status":    models.StatusPending,
	}).Decode(&request)
	observe(CollectionMentorshipRequests, "findOne", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("pending request: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch pending request: %w", err)
	}
	return &request, nil
}

// ListByStudent retrieves requests sent by a student, newest first
func (r *MentorshipRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.MentorshipRequest, error) {
	return r.list(ctx, bson.M{"studentId": studentID})
}

// ListByAlumni retrieves requests addressed to an alumnus, newest first
func (r *MentorshipRepository) ListByAlumni(ctx context.Context, alumniID string) ([]*models.MentorshipRequest, error) {
	return r.list(ctx, bson.M{"alumniId": alumniID})
}

func (r *MentorshipRepository) list(ctx context.Context, filter bson.M) ([]*models.MentorshipRequest, error) {
	start := time.Now()
	cursor, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "requestedAt", Value: -1}}),
	)
	if err != nil {
		observe(CollectionMentorshipRequests, "find", start, err)
		return nil, fmt.Errorf("failed to list mentorship requests: %w", err)
	}

	requests := []*models.MentorshipRequest{}
	err = cursor.All(ctx, &requests)
	observe(CollectionMentorshipRequests, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mentorship requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus applies a status transition. The filter pins the expected
// current status so concurrent responders cannot both win.
func (r *MentorshipRepository) UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus, responseMessage string) error {
	start := time.Now()

	now := time.Now().UTC()
	set := bson.M{
		"status":      to,
		"respondedAt": now,
	}
	if responseMessage != "" {
		set["responseMessage"] = responseMessage
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
	observe(CollectionMentorshipRequests, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to update mentorship status: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either gone or already moved past the expected status
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("mentorship request already responded: %w", apperrors.ErrConflict)
	}
	return nil
}
