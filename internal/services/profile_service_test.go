package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
)

func unsetSession() *models.Session {
	return &models.Session{ProfileID: "profile-1", Email: "new@example.com", Name: "Newbie", Role: models.RoleUnset}
}

func TestCreateProfile_StartsUnset(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	svc := services.NewProfileService(profileRepo, new(MockMediaStorage), new(MockDirectoryProvider))

	profileRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.Role == models.RoleUnset && p.Email == "new@example.com" && p.Student == nil && p.Alumni == nil
	})).Return(nil)

	profile, err := svc.CreateProfile(context.Background(), &models.CreateProfileRequest{
		Email: "new@example.com",
		Name:  "Newbie",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, models.RoleUnset, profile.Role)
}

func TestSelectRole_Student(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	directory := new(MockDirectoryProvider)
	svc := services.NewProfileService(profileRepo, new(MockMediaStorage), directory)

	profileRepo.On("SelectRole", mock.Anything, "profile-1", models.RoleStudent,
		mock.MatchedBy(func(s *models.StudentProfile) bool { return s.College == "State Tech" }),
		(*models.AlumniProfile)(nil),
	).Return(nil)
	profileRepo.On("GetByID", mock.Anything, "profile-1").Return(&models.Profile{
		ID:      "profile-1",
		Role:    models.RoleStudent,
		Student: &models.StudentProfile{College: "State Tech"},
	}, nil)

	profile, err := svc.SelectRole(context.Background(), unsetSession(), &models.SelectRoleRequest{
		Role:    models.RoleStudent,
		Student: &models.StudentProfileInput{College: "State Tech", Year: 2},
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleStudent, profile.Role)
	directory.AssertNotCalled(t, "Invalidate")
}

func TestSelectRole_AlumniInvalidatesDirectory(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	directory := new(MockDirectoryProvider)
	svc := services.NewProfileService(profileRepo, new(MockMediaStorage), directory)

	profileRepo.On("SelectRole", mock.Anything, "profile-1", models.RoleAlumni,
		(*models.StudentProfile)(nil), mock.Anything).Return(nil)
	profileRepo.On("GetByID", mock.Anything, "profile-1").Return(&models.Profile{
		ID:     "profile-1",
		Role:   models.RoleAlumni,
		Alumni: &models.AlumniProfile{Company: "Initech"},
	}, nil)
	directory.On("Invalidate").Return()

	_, err := svc.SelectRole(context.Background(), unsetSession(), &models.SelectRoleRequest{
		Role:   models.RoleAlumni,
		Alumni: &models.AlumniProfileInput{JobTitle: "SWE", Company: "Initech"},
	})

	assert.NoError(t, err)
	directory.AssertCalled(t, "Invalidate")
}

func TestSelectRole_ValidationFailures(t *testing.T) {
	svc := services.NewProfileService(new(MockProfileRepository), new(MockMediaStorage), new(MockDirectoryProvider))

	_, err := svc.SelectRole(context.Background(), unsetSession(), &models.SelectRoleRequest{
		Role: models.RoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "admin is not selectable")

	_, err = svc.SelectRole(context.Background(), unsetSession(), &models.SelectRoleRequest{
		Role: models.RoleStudent,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "student variant required")

	_, err = svc.SelectRole(context.Background(), unsetSession(), &models.SelectRoleRequest{
		Role: models.RoleAlumni,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "alumni variant required")
}

func TestSelectRole_SecondSelectionConflicts(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	svc := services.NewProfileService(profileRepo, new(MockMediaStorage), new(MockDirectoryProvider))

	profileRepo.On("SelectRole", mock.Anything, "profile-1", models.RoleStudent, mock.Anything, mock.Anything).
		Return(fmt.Errorf("role already selected: %w", apperrors.ErrConflict))

	_, err := svc.SelectRole(context.Background(), unsetSession(), &models.SelectRoleRequest{
		Role:    models.RoleStudent,
		Student: &models.StudentProfileInput{College: "State Tech", Year: 2},
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateProfile_RoleIsImmutable(t *testing.T) {
	svc := services.NewProfileService(new(MockProfileRepository), new(MockMediaStorage), new(MockDirectoryProvider))

	_, err := svc.UpdateProfile(context.Background(), studentSession(), &models.SelectRoleRequest{
		Role:   models.RoleAlumni,
		Alumni: &models.AlumniProfileInput{JobTitle: "SWE", Company: "Initech"},
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUploadAvatar_Success(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	storage := new(MockMediaStorage)
	directory := new(MockDirectoryProvider)
	svc := services.NewProfileService(profileRepo, storage, directory)

	storage.On("ValidateImageType", "image/png").Return(nil)
	storage.On("ValidateImageSize", "base64data").Return(nil)
	storage.On("GenerateFileName", "alumni-1", "me.png").Return("avatars/alumni-1/xyz.png")
	storage.On("UploadImage", mock.Anything, "base64data", "avatars/alumni-1/xyz.png", "image/png").
		Return("https://cdn.example.com/avatars/alumni-1/xyz.png", "avatars/alumni-1/xyz.png", nil)
	profileRepo.On("SetAvatarURL", mock.Anything, "alumni-1", "https://cdn.example.com/avatars/alumni-1/xyz.png").Return(nil)
	directory.On("Invalidate").Return()

	url, err := svc.UploadAvatar(context.Background(), alumniSession(), &models.UploadAvatarRequest{
		Image:       "base64data",
		FileName:    "me.png",
		ContentType: "image/png",
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/alumni-1/xyz.png", url)
	directory.AssertCalled(t, "Invalidate")
}

func TestUploadAvatar_RejectsBadImage(t *testing.T) {
	storage := new(MockMediaStorage)
	svc := services.NewProfileService(new(MockProfileRepository), storage, new(MockDirectoryProvider))

	storage.On("ValidateImageType", "application/pdf").Return(fmt.Errorf("unsupported image type"))

	_, err := svc.UploadAvatar(context.Background(), studentSession(), &models.UploadAvatarRequest{
		Image:       "data",
		FileName:    "cv.pdf",
		ContentType: "application/pdf",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	storage.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
