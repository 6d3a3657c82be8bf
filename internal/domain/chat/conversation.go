// Package chat persists AI-planner conversation transcripts.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/tripcanvas/service-travel/internal/domain"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is a single message in a planning chat session.
type Conversation struct {
	ID        uint
	UserID    uint
	SessionID string
	Role      string
	Message   string
	CreatedAt time.Time
}

// NewConversation validates and creates a conversation message.
func NewConversation(userID uint, sessionID, role, message string) (*Conversation, error) {
	if userID == 0 {
		return nil, domain.NewValidationError("user id is required")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.NewValidationError("session id is required")
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, domain.NewValidationError("role must be user or assistant")
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("message is required")
	}
	return &Conversation{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Repository defines persistence for chat conversations.
type Repository interface {
	FindByUserID(ctx context.Context, userID uint) ([]*Conversation, error)
	FindBySessionID(ctx context.Context, userID uint, sessionID string) ([]*Conversation, error)
	Save(ctx context.Context, c *Conversation) error
}
