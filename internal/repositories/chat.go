package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentforge/hr-platform/internal/models"
)

type ChatRepository interface {
	CreateSession(session *models.ChatSession) error
	FindSession(id, userID uuid.UUID) (*models.ChatSession, error)
	FindSessionsByUser(userID uuid.UUID, limit int) ([]models.ChatSession, error)
	TouchSession(id uuid.UUID) error
	AppendMessage(message *models.ChatMessage) error
	FindMessages(sessionID uuid.UUID) ([]models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// CreateSession implements ChatRepository.
func (r *chatRepository) CreateSession(session *models.ChatSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}
	return nil
}

// FindSession implements ChatRepository. Sessions are scoped to their owner.
func (r *chatRepository) FindSession(id, userID uuid.UUID) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("chat session not found")
		}
		return nil, fmt.Errorf("failed to find chat session: %w", err)
	}
	return &session, nil
}

// FindSessionsByUser implements ChatRepository.
func (r *chatRepository) FindSessionsByUser(userID uuid.UUID, limit int) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := r.db.
		Where("user_id = ?", userID).
		Order("last_activity_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat sessions: %w", err)
	}
	return sessions, nil
}

// TouchSession implements ChatRepository.
func (r *chatRepository) TouchSession(id uuid.UUID) error {
	result := r.db.Model(&models.ChatSession{}).
		Where("id = ?", id).
		Update("last_activity_at", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to touch chat session: %w", result.Error)
	}
	return nil
}

// AppendMessage implements ChatRepository.
func (r *chatRepository) AppendMessage(message *models.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// FindMessages implements ChatRepository.
func (r *chatRepository) FindMessages(sessionID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat messages: %w", err)
	}
	return messages, nil
}
