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

// ErrDuplicateSession is returned when inserting a chat session whose
// participant key already exists. The caller re-reads and uses the winner.
var ErrDuplicateSession = errors.New("chat session already exists for participant pair")

// ChatRepository handles chat session and message documents
type ChatRepository struct {
	sessions *mongo.Collection
	messages *mongo.Collection
}

// NewChatRepository creates a new chat repository
func NewChatRepository(client *mongodb.Client) *ChatRepository {
	return &ChatRepository{
		sessions: client.Collection(CollectionChats),
		messages: client.Collection(CollectionChatMessages),
	}
}

// EnsureIndexes creates the unique participant-pair index that guarantees at
// most one session per pair even under concurrent opens. Called at startup.
func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "participantKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create chat participantKey index: %w", err)
	}
	return nil
}

// GetByParticipantKey retrieves the session for a canonical pair key
func (r *ChatRepository) GetByParticipantKey(ctx context.Context, key string) (*models.ChatSession, error) {
	start := time.Now()
	var session models.ChatSession
	err := r.sessions.FindOne(ctx, bson.M{"participantKey": key}).Decode(&session)
	observe(CollectionChats, "findOne", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("chat session for pair: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch chat session: %w", err)
	}
	return &session, nil
}

// GetByID retrieves a session by id
func (r *ChatRepository) GetByID(ctx context.Context, id string) (*models.ChatSession, error) {
	start := time.Now()
	var session models.ChatSession
	err := r.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	observe(CollectionChats, "findOne", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("chat session %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch chat session: %w", err)
	}
	return &session, nil
}

// Insert stores a new session. Returns ErrDuplicateSession when another
// writer won the unique-index race for the same pair.
func (r *ChatRepository) Insert(ctx context.Context, session *models.ChatSession) error {
	start := time.Now()
	_, err := r.sessions.InsertOne(ctx, session)
	observe(CollectionChats, "insert", start, err)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSession
		}
		return fmt.Errorf("failed to insert chat session: %w", err)
	}
	return nil
}

// ListByParticipant retrieves a user's sessions, most recently active first
func (r *ChatRepository) ListByParticipant(ctx context.Context, profileID string) ([]*models.ChatSession, error) {
	start := time.Now()
	cursor, err := r.sessions.Find(ctx,
		bson.M{"participantIds": profileID},
		options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}}),
	)
	if err != nil {
		observe(CollectionChats, "find", start, err)
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}

	sessions := []*models.ChatSession{}
	err = cursor.All(ctx, &sessions)
	observe(CollectionChats, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chat sessions: %w", err)
	}
	return sessions, nil
}

// InsertMessage stores a chat message
func (r *ChatRepository) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	start := time.Now()
	_, err := r.messages.InsertOne(ctx, message)
	observe(CollectionChatMessages, "insert", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// UpdateLastMessage refreshes the session's recency fields after a send
func (r *ChatRepository) UpdateLastMessage(ctx context.Context, sessionID, text string, at time.Time) error {
	start := time.Now()
	_, err := r.sessions.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$set": bson.M{
			"lastMessageAt":   at,
			"lastMessageText": text,
		}},
	)
	observe(CollectionChats, "updateOne", start, err)
	if err != nil {
		return fmt.Errorf("failed to update chat session recency: %w", err)
	}
	return nil
}

// ListMessages retrieves up to limit messages for a session, newest first.
// Callers reverse the slice when they need chronological order.
func (r *ChatRepository) ListMessages(ctx context.Context, sessionID string, limit int) ([]*models.ChatMessage, error) {
	start := time.Now()
	cursor, err := r.messages.Find(ctx,
		bson.M{"chatId": sessionID},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		observe(CollectionChatMessages, "find", start, err)
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	messages := []*models.ChatMessage{}
	err = cursor.All(ctx, &messages)
	observe(CollectionChatMessages, "find", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	return messages, nil
}
