package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
)

var (
	// ErrInvalidStatusTransition indicates a disallowed mentorship status move
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrDuplicatePendingRequest indicates the student already has an open
	// request to this alumnus
	ErrDuplicatePendingRequest = errors.New("pending request already exists for this mentor")
)

// MentorshipService handles the mentorship request lifecycle
type MentorshipService struct {
	requestRepo MentorshipRepositoryInterface
	profileRepo ProfileRepositoryInterface
	notifier    Notifier
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(requestRepo MentorshipRepositoryInterface, profileRepo ProfileRepositoryInterface, notifier Notifier) *MentorshipService {
	return &MentorshipService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// CreateRequest opens a pending mentorship request from the session's
// student to an alumnus. Names and avatars are denormalized at write time.
func (s *MentorshipService) CreateRequest(ctx context.Context, session *models.Session, payload *models.CreateMentorshipRequestPayload) (*models.MentorshipRequest, error) {
	if session.Role != models.RoleStudent {
		return nil, apperrors.AccessDeniedError("only students can request mentorship")
	}
	if payload.AlumniID == session.ProfileID {
		return nil, apperrors.InvalidInputError("alumniId", "cannot request mentorship from yourself")
	}

	alumni, err := s.profileRepo.GetByID(ctx, payload.AlumniID)
	if err != nil {
		return nil, err
	}
	if alumni.Role != models.RoleAlumni {
		return nil, apperrors.InvalidInputError("alumniId", "target profile is not an alumnus")
	}

	student, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requestRepo.GetPendingBetween(ctx, session.ProfileID, payload.AlumniID); err == nil {
		return nil, ErrDuplicatePendingRequest
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	goals := payload.Goals
	if goals == "" && student.Student != nil {
		goals = student.Student.Goals
	}

	request := &models.MentorshipRequest{
		ID:            uuid.NewString(),
		StudentID:     student.ID,
		StudentName:   student.Name,
		StudentAvatar: student.AvatarURL,
		AlumniID:      alumni.ID,
		AlumniName:    alumni.Name,
		AlumniAvatar:  alumni.AvatarURL,
		Message:       payload.Message,
		StudentGoals:  goals,
		Status:        models.StatusPending,
		RequestedAt:   time.Now().UTC(),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		logger.Error("Failed to create mentorship request",
			zap.String("student_id", student.ID),
			zap.String("alumni_id", alumni.ID),
			zap.Error(err))
		return nil, err
	}

	metrics.MentorshipRequestsCreated.WithLabelValues(string(models.StatusPending)).Inc()
	logger.Info("Mentorship request created",
		zap.String("request_id", request.ID),
		zap.String("student_id", student.ID),
		zap.String("alumni_id", alumni.ID))

	return request, nil
}

// ListForUser returns the requests visible to the session: sent requests for
// a student, received requests for an alumnus. Newest first.
func (s *MentorshipService) ListForUser(ctx context.Context, session *models.Session) (*models.MentorshipRequestsResponse, error) {
	var (
		requests []*models.MentorshipRequest
		err      error
	)

	switch session.Role {
	case models.RoleStudent:
		requests, err = s.requestRepo.ListByStudent(ctx, session.ProfileID)
	case models.RoleAlumni:
		requests, err = s.requestRepo.ListByAlumni(ctx, session.ProfileID)
	default:
		return nil, apperrors.AccessDeniedError("select a role to view mentorship requests")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentorship requests: %w", err)
	}

	out := make([]models.MentorshipRequest, 0, len(requests))
	for _, r := range requests {
		out = append(out, *r)
	}

	return &models.MentorshipRequestsResponse{
		Requests: out,
		Total:    len(out),
	}, nil
}

// Respond applies a status transition on behalf of the receiving alumnus.
// The transition table allows pending to move to any decision and accepted
// to gain a written response; rejected and messaged are final.
func (s *MentorshipService) Respond(ctx context.Context, session *models.Session, requestID string, payload *models.UpdateMentorshipStatusPayload) (*models.MentorshipRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.AlumniID != session.ProfileID {
		return nil, apperrors.AccessDeniedError("request belongs to another mentor")
	}

	if !request.Status.CanTransitionTo(payload.Status) {
		return nil, fmt.Errorf("%s -> %s: %w", request.Status, payload.Status, ErrInvalidStatusTransition)
	}

	responseMessage := ""
	if payload.Status == models.StatusMessaged {
		responseMessage = payload.Message
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, request.Status, payload.Status, responseMessage); err != nil {
		logger.Error("Failed to update mentorship status",
			zap.String("request_id", requestID),
			zap.String("from", string(request.Status)),
			zap.String("to", string(payload.Status)),
			zap.Error(err))
		return nil, err
	}

	metrics.MentorshipStatusUpdates.WithLabelValues(string(request.Status), string(payload.Status)).Inc()

	s.notifier.Push(request.StudentID, models.NotificationMentorshipUpdate,
		fmt.Sprintf("%s %s your mentorship request", request.AlumniName, statusVerb(payload.Status)), "")

	logger.Info("Mentorship request updated",
		zap.String("request_id", requestID),
		zap.String("from", string(request.Status)),
		zap.String("to", string(payload.Status)))

	return s.requestRepo.GetByID(ctx, requestID)
}

func statusVerb(status models.RequestStatus) string {
	switch status {
	case models.StatusAccepted:
		return "accepted"
	case models.StatusRejected:
		return "declined"
	case models.StatusMessaged:
		return "replied to"
	default:
		return "updated"
	}
}
