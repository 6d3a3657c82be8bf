package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	chatDomain "github.com/tripcanvas/service-travel/internal/domain/chat"
)

// ConversationModel is the GORM model for the chat_conversations table.
type ConversationModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	SessionID string    `gorm:"index;not null;size:64"`
	Role      string    `gorm:"not null;size:20"`
	Message   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ConversationModel) TableName() string {
	return "chat_conversations"
}

// GormChatRepository is the GORM-based implementation of chat.Repository.
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GormChatRepository.
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// FindByUserID retrieves all conversation messages of a user in
// chronological order.
func (r *GormChatRepository) FindByUserID(ctx context.Context, userID uint) ([]*chatDomain.Conversation, error) {
	var models []ConversationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find conversations: %w", err)
	}
	return toDomainConversations(models), nil
}

// FindBySessionID retrieves one session's messages in chronological order.
func (r *GormChatRepository) FindBySessionID(ctx context.Context, userID uint, sessionID string) ([]*chatDomain.Conversation, error) {
	var models []ConversationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("created_at, id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find session conversations: %w", err)
	}
	return toDomainConversations(models), nil
}

// Save persists a new conversation message.
func (r *GormChatRepository) Save(ctx context.Context, c *chatDomain.Conversation) error {
	model := &ConversationModel{
		UserID:    c.UserID,
		SessionID: c.SessionID,
		Role:      c.Role,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	c.ID = model.ID
	return nil
}

func toDomainConversations(models []ConversationModel) []*chatDomain.Conversation {
	conversations := make([]*chatDomain.Conversation, len(models))
	for i, m := range models {
		conversations[i] = &chatDomain.Conversation{
			ID:        m.ID,
			UserID:    m.UserID,
			SessionID: m.SessionID,
			Role:      m.Role,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		}
	}
	return conversations
}
