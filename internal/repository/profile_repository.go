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

// ProfileRepository handles profile document access
type ProfileRepository struct {
	col *mongo.Collection
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(client *mongodb.Client) *ProfileRepository {
	return &ProfileRepository{
		col: client.Collection(CollectionUsers),
	}
}

// EnsureIndexes creates the unique email index. Called once at startup.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	return nil
}

// Create inserts a new profile document
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	start := time.Now()
	_, err := r.col.InsertOne(ctx, profile)
	observe(CollectionUsers, "insert", start, err)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("profile with email %s: %w", profile.Email, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by id
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	start := time.Now()
	var profile models.Profile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	observe(CollectionUsers, "findOne", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	start := time.Now()
	var profile models.Profile
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	observe(CollectionUsers, "findOne", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile with email %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

// SelectRole performs the one-shot role selection. The filter requires the
// stored role to still be unset, so a re-selection matches nothing and is
// reported as a conflict.
func (r *ProfileRepository) SelectRole(ctx context.Context, id string, role models.Role, student *models.StudentProfile, alumni *models.AlumniProfile) error {
	start := time.Now()

	update := bson.M{"role": role}
	if student != nil {
		update["studentProfile"] = student
	}
	if alumni != nil {
		update["alumniProfile"] = alumni
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleUnset},
		bson.M{"$set": update},
	)
	observe(CollectionUsers, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to select role: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the profile is missing or the role was already chosen
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("role already selected: %w", apperrors.ErrConflict)
	}
	return nil
}

// UpdateStudentProfile replaces the student variant of a profile
func (r *ProfileRepository) UpdateStudentProfile(ctx context.Context, id string, student *models.StudentProfile) error {
	return r.updateVariant(ctx, id, models.RoleStudent, bson.M{"studentProfile": student})
}

// UpdateAlumniProfile replaces the alumni variant of a profile
func (r *ProfileRepository) UpdateAlumniProfile(ctx context.Context, id string, alumni *models.AlumniProfile) error {
	return r.updateVariant(ctx, id, models.RoleAlumni, bson.M{"alumniProfile": alumni})
}

func (r *ProfileRepository) updateVariant(ctx context.Context, id string, role models.Role, set bson.M) error {
	start := time.Now()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "role": role},
		bson.M{"$set": set},
	)
	observe(CollectionUsers, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to update profile variant: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("profile %s with role %s: %w", id, role, apperrors.ErrNotFound)
	}
	return nil
}

// SetAvatarURL stores the public URL of an uploaded avatar
func (r *ProfileRepository) SetAvatarURL(ctx context.Context, id, avatarURL string) error {
	start := time.Now()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"avatarUrl": avatarURL}},
	)
	observe(CollectionUsers, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to set avatar url: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// ListByRole retrieves all profiles with the given role, newest first
func (r *ProfileRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.Profile, error) {
	start := time.Now()
	cursor, err := r.col.Find(ctx,
		bson.M{"role": role},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		observe(CollectionUsers, "find", start, err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := []*models.Profile{}
	err = cursor.All(ctx, &profiles)
	observe(CollectionUsers, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

// DistinctIndustries returns the distinct industries across alumni profiles
func (r *ProfileRepository) DistinctIndustries(ctx context.Context) ([]string, error) {
	start := time.Now()

	res := r.col.Distinct(ctx, "alumniProfile.industry", bson.M{
		"role":                    models.RoleAlumni,
		"alumniProfile.industry": bson.M{"$ne": ""},
	})

	var industries []string
	err := res.Decode(&industries)
	observe(CollectionUsers, "distinct", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch distinct industries: %w", err)
	}
	return industries, nil
}

// isDuplicateKey reports whether the error is a unique-index violation
// (server error code 11000)
func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}
