package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/pkg/genai"
)

// MockProfileRepository is a mock implementation of ProfileRepositoryInterface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) SelectRole(ctx context.Context, id string, role models.Role, student *models.StudentProfile, alumni *models.AlumniProfile) error {
	args := m.Called(ctx, id, role, student, alumni)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateStudentProfile(ctx context.Context, id string, student *models.StudentProfile) error {
	args := m.Called(ctx, id, student)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateAlumniProfile(ctx context.Context, id string, alumni *models.AlumniProfile) error {
	args := m.Called(ctx, id, alumni)
	return args.Error(0)
}

func (m *MockProfileRepository) SetAvatarURL(ctx context.Context, id, avatarURL string) error {
	args := m.Called(ctx, id, avatarURL)
	return args.Error(0)
}

func (m *MockProfileRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) DistinctIndustries(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockMentorshipRepository is a mock implementation of MentorshipRepositoryInterface
type MockMentorshipRepository struct {
	mock.Mock
}

func (m *MockMentorshipRepository) Create(ctx context.Context, request *models.MentorshipRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockMentorshipRepository) GetByID(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockMentorshipRepository) GetPendingBetween(ctx context.Context, studentID, alumniID string) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, studentID, alumniID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockMentorshipRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.MentorshipRequest, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MentorshipRequest), args.Error(1)
}

func (m *MockMentorshipRepository) ListByAlumni(ctx context.Context, alumniID string) ([]*models.MentorshipRequest, error) {
	args := m.Called(ctx, alumniID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MentorshipRequest), args.Error(1)
}

func (m *MockMentorshipRepository) UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus, responseMessage string) error {
	args := m.Called(ctx, id, from, to, responseMessage)
	return args.Error(0)
}

// MockPostRepository is a mock implementation of PostRepositoryInterface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, category string, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id string, set bson.M) error {
	args := m.Called(ctx, id, set)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateLikeState(ctx context.Context, id string, likedBy []string) error {
	args := m.Called(ctx, id, likedBy)
	return args.Error(0)
}

func (m *MockPostRepository) AddComment(ctx context.Context, comment *models.PostComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockPostRepository) ListComments(ctx context.Context, postID string) ([]*models.PostComment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PostComment), args.Error(1)
}

func (m *MockPostRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockDiscussionRepository is a mock implementation of DiscussionRepositoryInterface
type MockDiscussionRepository struct {
	mock.Mock
}

func (m *MockDiscussionRepository) CreateThread(ctx context.Context, thread *models.DiscussionThread) error {
	args := m.Called(ctx, thread)
	return args.Error(0)
}

func (m *MockDiscussionRepository) GetThread(ctx context.Context, id string) (*models.DiscussionThread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscussionThread), args.Error(1)
}

func (m *MockDiscussionRepository) ListThreads(ctx context.Context, limit int) ([]*models.DiscussionThread, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DiscussionThread), args.Error(1)
}

func (m *MockDiscussionRepository) AddComment(ctx context.Context, comment *models.DiscussionComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockDiscussionRepository) ListComments(ctx context.Context, threadID string) ([]*models.DiscussionComment, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DiscussionComment), args.Error(1)
}

func (m *MockDiscussionRepository) RecentTitles(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockChatRepository is a mock implementation of ChatRepositoryInterface
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) GetByParticipantKey(ctx context.Context, key string) (*models.ChatSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatSession), args.Error(1)
}

func (m *MockChatRepository) GetByID(ctx context.Context, id string) (*models.ChatSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatSession), args.Error(1)
}

func (m *MockChatRepository) Insert(ctx context.Context, session *models.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockChatRepository) ListByParticipant(ctx context.Context, profileID string) ([]*models.ChatSession, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChatSession), args.Error(1)
}

func (m *MockChatRepository) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockChatRepository) UpdateLastMessage(ctx context.Context, sessionID, text string, at time.Time) error {
	args := m.Called(ctx, sessionID, text, at)
	return args.Error(0)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, sessionID string, limit int) ([]*models.ChatMessage, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChatMessage), args.Error(1)
}

// MockMediaStorage is a mock implementation of MediaStorageInterface
type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) UploadImage(ctx context.Context, imageData, key, contentType string) (string, string, error) {
	args := m.Called(ctx, imageData, key, contentType)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockMediaStorage) GenerateFileName(ownerID, originalFileName string) string {
	args := m.Called(ownerID, originalFileName)
	return args.String(0)
}

func (m *MockMediaStorage) ValidateImageType(contentType string) error {
	args := m.Called(contentType)
	return args.Error(0)
}

func (m *MockMediaStorage) ValidateImageSize(imageData string) error {
	args := m.Called(imageData)
	return args.Error(0)
}

// MockDirectoryProvider is a mock implementation of DirectoryProvider
type MockDirectoryProvider struct {
	mock.Mock
}

func (m *MockDirectoryProvider) Get(ctx context.Context) ([]*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *MockDirectoryProvider) Invalidate() {
	m.Called()
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Push(recipientID string, kind models.NotificationType, text, chatID string) *models.AppNotification {
	args := m.Called(recipientID, kind, text, chatID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.AppNotification)
}

// MockAssistantClient is a mock implementation of AssistantClient
type MockAssistantClient struct {
	mock.Mock
}

func (m *MockAssistantClient) Ask(ctx context.Context, systemPrompt, question string, tools []genai.Tool) (string, error) {
	args := m.Called(ctx, systemPrompt, question, tools)
	return args.String(0), args.Error(1)
}

func (m *MockAssistantClient) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, prompt)
	return args.String(0), args.Error(1)
}
