package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/pkg/genai"
)

// ProfileRepositoryInterface defines profile persistence operations
type ProfileRepositoryInterface interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	SelectRole(ctx context.Context, id string, role models.Role, student *models.StudentProfile, alumni *models.AlumniProfile) error
	UpdateStudentProfile(ctx context.Context, id string, student *models.StudentProfile) error
	UpdateAlumniProfile(ctx context.Context, id string, alumni *models.AlumniProfile) error
	SetAvatarURL(ctx context.Context, id, avatarURL string) error
	ListByRole(ctx context.Context, role models.Role) ([]*models.Profile, error)
	DistinctIndustries(ctx context.Context) ([]string, error)
}

// MentorshipRepositoryInterface defines mentorship request persistence
type MentorshipRepositoryInterface interface {
	Create(ctx context.Context, request *models.MentorshipRequest) error
	GetByID(ctx context.Context, id string) (*models.MentorshipRequest, error)
	GetPendingBetween(ctx context.Context, studentID, alumniID string) (*models.MentorshipRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.MentorshipRequest, error)
	ListByAlumni(ctx context.Context, alumniID string) ([]*models.MentorshipRequest, error)
	UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus, responseMessage string) error
}

// PostRepositoryInterface defines post persistence operations
type PostRepositoryInterface interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, category string, limit int) ([]*models.Post, error)
	Update(ctx context.Context, id string, set bson.M) error
	Delete(ctx context.Context, id string) error
	UpdateLikeState(ctx context.Context, id string, likedBy []string) error
	AddComment(ctx context.Context, comment *models.PostComment) error
	ListComments(ctx context.Context, postID string) ([]*models.PostComment, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

// DiscussionRepositoryInterface defines discussion persistence operations
type DiscussionRepositoryInterface interface {
	CreateThread(ctx context.Context, thread *models.DiscussionThread) error
	GetThread(ctx context.Context, id string) (*models.DiscussionThread, error)
	ListThreads(ctx context.Context, limit int) ([]*models.DiscussionThread, error)
	AddComment(ctx context.Context, comment *models.DiscussionComment) error
	ListComments(ctx context.Context, threadID string) ([]*models.DiscussionComment, error)
	RecentTitles(ctx context.Context, limit int) ([]string, error)
}

// ChatRepositoryInterface defines chat persistence operations
type ChatRepositoryInterface interface {
	GetByParticipantKey(ctx context.Context, key string) (*models.ChatSession, error)
	GetByID(ctx context.Context, id string) (*models.ChatSession, error)
	Insert(ctx context.Context, session *models.ChatSession) error
	ListByParticipant(ctx context.Context, profileID string) ([]*models.ChatSession, error)
	InsertMessage(ctx context.Context, message *models.ChatMessage) error
	UpdateLastMessage(ctx context.Context, sessionID, text string, at time.Time) error
	ListMessages(ctx context.Context, sessionID string, limit int) ([]*models.ChatMessage, error)
}

// MediaStorageInterface defines the object storage operations used for
// avatar uploads
type MediaStorageInterface interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, string, error)
	GenerateFileName(ownerID, originalFileName string) string
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// DirectoryProvider serves the cached alumni directory snapshot
type DirectoryProvider interface {
	Get(ctx context.Context) ([]*models.Profile, error)
	Invalidate()
}

// Notifier pushes best-effort in-memory notifications
type Notifier interface {
	Push(recipientID string, kind models.NotificationType, text, chatID string) *models.AppNotification
}

// AssistantClient is the generative-model surface used by the assistant and
// recommendation flows
type AssistantClient interface {
	Ask(ctx context.Context, systemPrompt, question string, tools []genai.Tool) (string, error)
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// ProfileServiceInterface defines profile operations
type ProfileServiceInterface interface {
	CreateProfile(ctx context.Context, req *models.CreateProfileRequest) (*models.Profile, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	SelectRole(ctx context.Context, session *models.Session, req *models.SelectRoleRequest) (*models.Profile, error)
	UpdateProfile(ctx context.Context, session *models.Session, req *models.SelectRoleRequest) (*models.Profile, error)
	UploadAvatar(ctx context.Context, session *models.Session, req *models.UploadAvatarRequest) (string, error)
}

// DirectoryServiceInterface defines alumni directory operations
type DirectoryServiceInterface interface {
	ListAlumni(ctx context.Context, filter models.DirectoryFilter) ([]*models.Profile, error)
	Industries(ctx context.Context) ([]string, error)
}

// MentorshipServiceInterface defines mentorship request operations
type MentorshipServiceInterface interface {
	CreateRequest(ctx context.Context, session *models.Session, payload *models.CreateMentorshipRequestPayload) (*models.MentorshipRequest, error)
	ListForUser(ctx context.Context, session *models.Session) (*models.MentorshipRequestsResponse, error)
	Respond(ctx context.Context, session *models.Session, requestID string, payload *models.UpdateMentorshipStatusPayload) (*models.MentorshipRequest, error)
}

// PostServiceInterface defines post operations
type PostServiceInterface interface {
	CreatePost(ctx context.Context, session *models.Session, req *models.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, category string, limit int) ([]*models.Post, error)
	UpdatePost(ctx context.Context, session *models.Session, id string, req *models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, session *models.Session, id string) error
	ToggleLike(ctx context.Context, session *models.Session, id string) (*models.ToggleLikeResult, error)
	AddComment(ctx context.Context, session *models.Session, postID string, req *models.AddCommentRequest) (*models.PostComment, error)
	ListComments(ctx context.Context, postID string) ([]*models.PostComment, error)
}

// DiscussionServiceInterface defines discussion thread operations
type DiscussionServiceInterface interface {
	CreateThread(ctx context.Context, session *models.Session, req *models.CreateThreadRequest) (*models.DiscussionThread, error)
	GetThread(ctx context.Context, id string) (*models.DiscussionThread, error)
	ListThreads(ctx context.Context, limit int) ([]*models.DiscussionThread, error)
	AddComment(ctx context.Context, session *models.Session, threadID string, req *models.AddCommentRequest) (*models.DiscussionComment, error)
	ListComments(ctx context.Context, threadID string) ([]*models.DiscussionComment, error)
}

// ChatServiceInterface defines two-party chat operations
type ChatServiceInterface interface {
	OpenChat(ctx context.Context, session *models.Session, participantID string) (*models.ChatSession, error)
	ListSessions(ctx context.Context, session *models.Session) ([]*models.ChatSession, error)
	SendMessage(ctx context.Context, session *models.Session, chatID string, req *models.SendMessageRequest) (*models.ChatMessage, error)
	GetMessages(ctx context.Context, session *models.Session, chatID string, limit int) ([]*models.ChatMessage, error)
}

// AssistantServiceInterface defines the FAQ assistant and recommendation flows
type AssistantServiceInterface interface {
	Ask(ctx context.Context, question string) (*models.AskResponse, error)
	RecommendAlumni(ctx context.Context, session *models.Session) (*models.RecommendationResponse, error)
}

// Ensure services implement their interfaces
var _ ProfileServiceInterface = (*ProfileService)(nil)
var _ DirectoryServiceInterface = (*DirectoryService)(nil)
var _ MentorshipServiceInterface = (*MentorshipService)(nil)
var _ PostServiceInterface = (*PostService)(nil)
var _ DiscussionServiceInterface = (*DiscussionService)(nil)
var _ ChatServiceInterface = (*ChatService)(nil)
var _ AssistantServiceInterface = (*AssistantService)(nil)
