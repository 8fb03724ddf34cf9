package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
	"github.com/mentorconnect/mentorconnect-api/pkg/retry"
)

// ProfileService handles profile lifecycle operations
type ProfileService struct {
	profileRepo ProfileRepositoryInterface
	storage     MediaStorageInterface
	directory   DirectoryProvider
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo ProfileRepositoryInterface, storage MediaStorageInterface, directory DirectoryProvider) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		storage:     storage,
		directory:   directory,
	}
}

// CreateProfile registers a new profile with an unset role
func (s *ProfileService) CreateProfile(ctx context.Context, req *models.CreateProfileRequest) (*models.Profile, error) {
	profile := &models.Profile{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      models.RoleUnset,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		logger.Error("Failed to create profile",
			zap.String("email", req.Email),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Profile created",
		zap.String("profile_id", profile.ID),
		zap.String("email", profile.Email))
	return profile, nil
}

// GetProfile retrieves a profile by id
func (s *ProfileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

// GetProfileByEmail retrieves a profile by email
func (s *ProfileService) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.profileRepo.GetByEmail(ctx, email)
}

// SelectRole performs the one-shot role selection. The stored role must
// still be unset; a second selection is a conflict regardless of payload.
func (s *ProfileService) SelectRole(ctx context.Context, session *models.Session, req *models.SelectRoleRequest) (*models.Profile, error) {
	if !req.Role.IsSelectable() {
		return nil, apperrors.InvalidInputError("role", fmt.Sprintf("%q cannot be selected", req.Role))
	}

	student, alumni, err := buildRoleVariant(req)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.SelectRole(ctx, session.ProfileID, req.Role, student, alumni); err != nil {
		logger.Error("Failed to select role",
			zap.String("profile_id", session.ProfileID),
			zap.String("role", string(req.Role)),
			zap.Error(err))
		return nil, err
	}

	if req.Role == models.RoleAlumni {
		s.directory.Invalidate()
	}

	logger.Info("Role selected",
		zap.String("profile_id", session.ProfileID),
		zap.String("role", string(req.Role)))

	return s.profileRepo.GetByID(ctx, session.ProfileID)
}

// UpdateProfile replaces the role-specific details of an already-selected
// profile. The role itself never changes here.
func (s *ProfileService) UpdateProfile(ctx context.Context, session *models.Session, req *models.SelectRoleRequest) (*models.Profile, error) {
	if req.Role != session.Role {
		return nil, apperrors.InvalidInputError("role", "cannot be changed after selection")
	}

	student, alumni, err := buildRoleVariant(req)
	if err != nil {
		return nil, err
	}

	switch req.Role {
	case models.RoleStudent:
		err = s.profileRepo.UpdateStudentProfile(ctx, session.ProfileID, student)
	case models.RoleAlumni:
		err = s.profileRepo.UpdateAlumniProfile(ctx, session.ProfileID, alumni)
	default:
		return nil, apperrors.InvalidInputError("role", fmt.Sprintf("%q has no editable profile", req.Role))
	}
	if err != nil {
		logger.Error("Failed to update profile",
			zap.String("profile_id", session.ProfileID),
			zap.Error(err))
		return nil, err
	}

	if req.Role == models.RoleAlumni {
		s.directory.Invalidate()
	}

	return s.profileRepo.GetByID(ctx, session.ProfileID)
}

// UploadAvatar validates and stores a profile picture, then records its
// public URL on the profile. Returns the URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, session *models.Session, req *models.UploadAvatarRequest) (string, error) {
	// Storage credentials are optional in local environments
	if s.storage == nil {
		return "", apperrors.InternalError("media storage is not configured")
	}

	if err := s.storage.ValidateImageType(req.ContentType); err != nil {
		return "", apperrors.InvalidInputError("image", err.Error())
	}
	if err := s.storage.ValidateImageSize(req.Image); err != nil {
		return "", apperrors.InvalidInputError("image", err.Error())
	}

	key := s.storage.GenerateFileName(session.ProfileID, req.FileName)

	url, err := retry.DoWithResult(ctx, retry.StorageConfig(), "avatar_upload", func() (string, error) {
		u, _, uploadErr := s.storage.UploadImage(ctx, req.Image, key, req.ContentType)
		return u, uploadErr
	})
	if err != nil {
		logger.Error("Failed to upload avatar",
			zap.String("profile_id", session.ProfileID),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.profileRepo.SetAvatarURL(ctx, session.ProfileID, url); err != nil {
		return "", err
	}

	if session.Role == models.RoleAlumni {
		s.directory.Invalidate()
	}

	metrics.AvatarUploads.WithLabelValues("success").Inc()
	logger.Info("Avatar uploaded",
		zap.String("profile_id", session.ProfileID),
		zap.String("key", key))
	return url, nil
}

// buildRoleVariant converts the bindable inputs into exactly one stored
// variant matching the requested role
func buildRoleVariant(req *models.SelectRoleRequest) (*models.StudentProfile, *models.AlumniProfile, error) {
	switch req.Role {
	case models.RoleStudent:
		if req.Student == nil {
			return nil, nil, apperrors.InvalidInputError("studentProfile", "required for the student role")
		}
		return &models.StudentProfile{
			College:           req.Student.College,
			Year:              req.Student.Year,
			AcademicInterests: req.Student.AcademicInterests,
			Goals:             req.Student.Goals,
		}, nil, nil
	case models.RoleAlumni:
		if req.Alumni == nil {
			return nil, nil, apperrors.InvalidInputError("alumniProfile", "required for the alumni role")
		}
		return nil, &models.AlumniProfile{
			JobTitle:        req.Alumni.JobTitle,
			Company:         req.Alumni.Company,
			Skills:          req.Alumni.Skills,
			ExperienceYears: req.Alumni.ExperienceYears,
			Education:       req.Alumni.Education,
			Industry:        req.Alumni.Industry,
		}, nil
	default:
		return nil, nil, apperrors.InvalidInputError("role", fmt.Sprintf("%q cannot be selected", req.Role))
	}
}
