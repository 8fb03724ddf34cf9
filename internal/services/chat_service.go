package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/repository"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
)

// defaultMessageLimit caps a single message-history page
const defaultMessageLimit = 100

// notificationPreviewLen caps message text, in runes, in the peer's notification
const notificationPreviewLen = 80

// ChatService handles two-party chat sessions and messages
type ChatService struct {
	chatRepo    ChatRepositoryInterface
	profileRepo ProfileRepositoryInterface
	notifier    Notifier
}

// NewChatService creates a new ChatService
func NewChatService(chatRepo ChatRepositoryInterface, profileRepo ProfileRepositoryInterface, notifier Notifier) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// OpenChat resolves the session between the caller and another profile,
// creating it lazily on first contact. Exactly one of the pair must be a
// student and the other an alumnus. Racing first-contacts are settled by the
// unique pair index: the loser re-reads the winner's session.
func (s *ChatService) OpenChat(ctx context.Context, session *models.Session, participantID string) (*models.ChatSession, error) {
	if participantID == session.ProfileID {
		return nil, apperrors.InvalidInputError("participantId", "cannot open a chat with yourself")
	}

	peer, err := s.profileRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}

	studentID, alumniID, err := pairRoles(session.ProfileID, session.Role, peer.ID, peer.Role)
	if err != nil {
		return nil, err
	}

	key := models.CanonicalPairKey(session.ProfileID, participantID)

	existing, err := s.chatRepo.GetByParticipantKey(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	chat := &models.ChatSession{
		ID:             uuid.NewString(),
		ParticipantKey: key,
		ParticipantIDs: []string{session.ProfileID, participantID},
		StudentID:      studentID,
		AlumniID:       alumniID,
		CreatedAt:      now,
		LastMessageAt:  now,
	}

	err = s.chatRepo.Insert(ctx, chat)
	if errors.Is(err, repository.ErrDuplicateSession) {
		// Lost the first-contact race; the other side's insert won
		return s.chatRepo.GetByParticipantKey(ctx, key)
	}
	if err != nil {
		logger.Error("Failed to create chat session",
			zap.String("profile_id", session.ProfileID),
			zap.String("participant_id", participantID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Chat session created",
		zap.String("chat_id", chat.ID),
		zap.String("student_id", studentID),
		zap.String("alumni_id", alumniID))
	return chat, nil
}

// ListSessions returns the caller's chat sessions, most recently active first
func (s *ChatService) ListSessions(ctx context.Context, session *models.Session) ([]*models.ChatSession, error) {
	return s.chatRepo.ListByParticipant(ctx, session.ProfileID)
}

// SendMessage appends a message to a session the caller participates in.
// Whitespace-only text is rejected; the peer gets a best-effort notification.
func (s *ChatService) SendMessage(ctx context.Context, session *models.Session, chatID string, req *models.SendMessageRequest) (*models.ChatMessage, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.InvalidInputError("text", "message must not be empty")
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(session.ProfileID) {
		return nil, apperrors.AccessDeniedError("not a participant of this chat")
	}

	message := &models.ChatMessage{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		SenderID:  session.ProfileID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.chatRepo.InsertMessage(ctx, message); err != nil {
		logger.Error("Failed to send chat message",
			zap.String("chat_id", chat.ID),
			zap.String("sender_id", session.ProfileID),
			zap.Error(err))
		return nil, err
	}

	if err := s.chatRepo.UpdateLastMessage(ctx, chat.ID, text, message.CreatedAt); err != nil {
		// Recency is advisory; the message itself is already stored
		logger.Warn("Failed to update chat recency",
			zap.String("chat_id", chat.ID),
			zap.Error(err))
	}

	preview := text
	// Truncate on rune boundaries so multi-byte text stays valid UTF-8
	if runes := []rune(preview); len(runes) > notificationPreviewLen {
		preview = string(runes[:notificationPreviewLen])
	}
	s.notifier.Push(chat.OtherParticipant(session.ProfileID), models.NotificationChatMessage,
		fmt.Sprintf("%s: %s", session.Name, preview), chat.ID)

	metrics.ChatMessagesSent.WithLabelValues("sent").Inc()
	return message, nil
}

// GetMessages returns up to limit messages in chronological order. The
// store fetches newest-first so the most recent page survives the cap.
func (s *ChatService) GetMessages(ctx context.Context, session *models.Session, chatID string, limit int) ([]*models.ChatMessage, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(session.ProfileID) {
		return nil, apperrors.AccessDeniedError("not a participant of this chat")
	}

	if limit <= 0 || limit > defaultMessageLimit {
		limit = defaultMessageLimit
	}

	messages, err := s.chatRepo.ListMessages(ctx, chat.ID, limit)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// pairRoles maps an unordered student/alumni pair onto the session's named
// slots, rejecting any other role combination
func pairRoles(aID string, aRole models.Role, bID string, bRole models.Role) (studentID, alumniID string, err error) {
	switch {
	case aRole == models.RoleStudent && bRole == models.RoleAlumni:
		return aID, bID, nil
	case aRole == models.RoleAlumni && bRole == models.RoleStudent:
		return bID, aID, nil
	default:
		return "", "", apperrors.InvalidInputError("participantId", "chat requires one student and one alumnus")
	}
}
