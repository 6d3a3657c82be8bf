package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tripcanvas/service-travel/internal/application"
	"github.com/tripcanvas/service-travel/internal/auth"
	"github.com/tripcanvas/service-travel/internal/middleware"
	"github.com/tripcanvas/service-travel/internal/response"
)

// ChatHandler handles HTTP requests for planning conversations.
type ChatHandler struct {
	service *application.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *application.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// RegisterRoutes registers chat routes on the given router group.
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	chat := r.Group("/api/chat")
	chat.Use(middleware.Auth(jwtManager))
	{
		chat.POST("/messages", h.Append)
		chat.GET("/messages", h.History)
	}
}

// Append handles POST /api/chat/messages.
func (h *ChatHandler) Append(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Append(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// History handles GET /api/chat/messages. An optional sessionId query
// restricts the transcript to one session.
func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.History(c.Request.Context(), userID, c.Query("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
