package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chatDomain "github.com/tripcanvas/service-travel/internal/domain/chat"
)

// ChatMessageRequest holds one message appended to a planning conversation.
// An empty session id starts a new session.
type ChatMessageRequest struct {
	SessionID string `json:"sessionId"`
	Role      string `json:"role" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ConversationDTO is the response representation of a conversation message.
type ConversationDTO struct {
	ID        uint   `json:"id"`
	SessionID string `json:"sessionId"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// ChatService persists planning conversation transcripts.
type ChatService struct {
	repo   chatDomain.Repository
	logger *zap.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(repo chatDomain.Repository, logger *zap.Logger) *ChatService {
	return &ChatService{repo: repo, logger: logger}
}

// Append validates and stores a conversation message, creating a session id
// when the request carries none.
func (s *ChatService) Append(ctx context.Context, userID uint, req ChatMessageRequest) (*ConversationDTO, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	c, err := chatDomain.NewConversation(userID, sessionID, req.Role, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	dto := toConversationDTO(c)
	return &dto, nil
}

// History retrieves a user's conversation messages, optionally restricted to
// one session, in chronological order.
func (s *ChatService) History(ctx context.Context, userID uint, sessionID string) ([]ConversationDTO, error) {
	var (
		messages []*chatDomain.Conversation
		err      error
	)
	if sessionID != "" {
		messages, err = s.repo.FindBySessionID(ctx, userID, sessionID)
	} else {
		messages, err = s.repo.FindByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]ConversationDTO, len(messages))
	for i, m := range messages {
		dtos[i] = toConversationDTO(m)
	}
	return dtos, nil
}

func toConversationDTO(c *chatDomain.Conversation) ConversationDTO {
	return ConversationDTO{
		ID:        c.ID,
		SessionID: c.SessionID,
		Role:      c.Role,
		Message:   c.Message,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
