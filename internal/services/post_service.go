package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
)

// PostService handles alumni posts, likes and comments
type PostService struct {
	postRepo    PostRepositoryInterface
	profileRepo ProfileRepositoryInterface
}

// NewPostService creates a new PostService
func NewPostService(postRepo PostRepositoryInterface, profileRepo ProfileRepositoryInterface) *PostService {
	return &PostService{
		postRepo:    postRepo,
		profileRepo: profileRepo,
	}
}

// CreatePost publishes a new alumni post
func (s *PostService) CreatePost(ctx context.Context, session *models.Session, req *models.CreatePostRequest) (*models.Post, error) {
	if session.Role != models.RoleAlumni {
		return nil, apperrors.AccessDeniedError("only alumni can publish posts")
	}

	author, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:               uuid.NewString(),
		AuthorID:         author.ID,
		AuthorName:       author.Name,
		AuthorAvatar:     author.AvatarURL,
		Title:            req.Title,
		Content:          req.Content,
		Category:         req.Category,
		Tags:             req.Tags,
		ImageURL:         req.ImageURL,
		VideoURL:         req.VideoURL,
		ExternalLinkURL:  req.ExternalLinkURL,
		ExternalLinkText: req.ExternalLinkText,
		LikedBy:          []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		logger.Error("Failed to create post",
			zap.String("author_id", author.ID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Post created",
		zap.String("post_id", post.ID),
		zap.String("author_id", author.ID),
		zap.String("category", post.Category))
	return post, nil
}

// GetPost retrieves a single post
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns posts newest first, optionally filtered by category and
// capped at limit (0 means all)
func (s *PostService) ListPosts(ctx context.Context, category string, limit int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, category, limit)
}

// UpdatePost edits a post's content fields. Only the author may edit; nil
// payload fields are left untouched.
func (s *PostService) UpdatePost(ctx context.Context, session *models.Session, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != session.ProfileID {
		return nil, apperrors.AccessDeniedError("post belongs to another author")
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}
	if req.VideoURL != nil {
		set["videoUrl"] = *req.VideoURL
	}
	if req.ExternalLinkURL != nil {
		set["externalLinkUrl"] = *req.ExternalLinkURL
	}
	if req.ExternalLinkText != nil {
		set["externalLinkText"] = *req.ExternalLinkText
	}

	if err := s.postRepo.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post and its comments. Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, session *models.Session, id string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != session.ProfileID {
		return apperrors.AccessDeniedError("post belongs to another author")
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Post deleted",
		zap.String("post_id", id),
		zap.String("author_id", session.ProfileID))
	return nil
}

// ToggleLike flips the session user's like on a post. The membership list
// and the counter are written together in one document update; concurrent
// toggles resolve last-writer-wins.
func (s *PostService) ToggleLike(ctx context.Context, session *models.Session, id string) (*models.ToggleLikeResult, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	liked := !post.IsLikedBy(session.ProfileID)
	var likedBy []string
	if liked {
		likedBy = append(post.LikedBy, session.ProfileID)
	} else {
		likedBy = make([]string, 0, len(post.LikedBy))
		for _, uid := range post.LikedBy {
			if uid != session.ProfileID {
				likedBy = append(likedBy, uid)
			}
		}
	}

	if err := s.postRepo.UpdateLikeState(ctx, id, likedBy); err != nil {
		return nil, err
	}

	action := "unliked"
	if liked {
		action = "liked"
	}
	metrics.PostLikeToggles.WithLabelValues(action).Inc()

	return &models.ToggleLikeResult{
		Liked:      liked,
		LikesCount: len(likedBy),
	}, nil
}

// AddComment attaches a comment to a post, denormalizing author fields
func (s *PostService) AddComment(ctx context.Context, session *models.Session, postID string, req *models.AddCommentRequest) (*models.PostComment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	author, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		ID:           uuid.NewString(),
		PostID:       postID,
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.AvatarURL,
		AuthorRole:   author.Role,
		Content:      req.Content,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		logger.Error("Failed to add post comment",
			zap.String("post_id", postID),
			zap.String("author_id", author.ID),
			zap.Error(err))
		return nil, err
	}

	metrics.CommentsAdded.WithLabelValues("post").Inc()
	return comment, nil
}

// ListComments returns a post's comments, oldest first
func (s *PostService) ListComments(ctx context.Context, postID string) ([]*models.PostComment, error) {
	return s.postRepo.ListComments(ctx, postID)
}
