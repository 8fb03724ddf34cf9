package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
)

// DiscussionService handles discussion threads and their comments
type DiscussionService struct {
	discussionRepo DiscussionRepositoryInterface
	profileRepo    ProfileRepositoryInterface
}

// NewDiscussionService creates a new DiscussionService
func NewDiscussionService(discussionRepo DiscussionRepositoryInterface, profileRepo ProfileRepositoryInterface) *DiscussionService {
	return &DiscussionService{
		discussionRepo: discussionRepo,
		profileRepo:    profileRepo,
	}
}

// CreateThread starts a new discussion topic. Alumni only.
func (s *DiscussionService) CreateThread(ctx context.Context, session *models.Session, req *models.CreateThreadRequest) (*models.DiscussionThread, error) {
	if session.Role != models.RoleAlumni {
		return nil, apperrors.AccessDeniedError("only alumni can start discussions")
	}

	creator, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	thread := &models.DiscussionThread{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Content:        req.Content,
		CreatedBy:      creator.ID,
		CreatorName:    creator.Name,
		CreatorAvatar:  creator.AvatarURL,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	if err := s.discussionRepo.CreateThread(ctx, thread); err != nil {
		logger.Error("Failed to create discussion thread",
			zap.String("creator_id", creator.ID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Discussion thread created",
		zap.String("thread_id", thread.ID),
		zap.String("creator_id", creator.ID))
	return thread, nil
}

// GetThread retrieves a single thread
func (s *DiscussionService) GetThread(ctx context.Context, id string) (*models.DiscussionThread, error) {
	return s.discussionRepo.GetThread(ctx, id)
}

// ListThreads returns threads most recently active first, capped at limit
// (0 means all)
func (s *DiscussionService) ListThreads(ctx context.Context, limit int) ([]*models.DiscussionThread, error) {
	return s.discussionRepo.ListThreads(ctx, limit)
}

// AddComment attaches a comment to a thread and advances its activity
// timestamp. Any signed-in role may comment.
func (s *DiscussionService) AddComment(ctx context.Context, session *models.Session, threadID string, req *models.AddCommentRequest) (*models.DiscussionComment, error) {
	if _, err := s.discussionRepo.GetThread(ctx, threadID); err != nil {
		return nil, err
	}

	author, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	comment := &models.DiscussionComment{
		ID:           uuid.NewString(),
		ThreadID:     threadID,
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.AvatarURL,
		AuthorRole:   author.Role,
		Content:      req.Content,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.discussionRepo.AddComment(ctx, comment); err != nil {
		logger.Error("Failed to add discussion comment",
			zap.String("thread_id", threadID),
			zap.String("author_id", author.ID),
			zap.Error(err))
		return nil, err
	}

	metrics.CommentsAdded.WithLabelValues("discussion").Inc()
	return comment, nil
}

// ListComments returns a thread's comments, oldest first
func (s *DiscussionService) ListComments(ctx context.Context, threadID string) ([]*models.DiscussionComment, error) {
	return s.discussionRepo.ListComments(ctx, threadID)
}
