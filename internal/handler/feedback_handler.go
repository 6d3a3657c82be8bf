package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tripcanvas/service-travel/internal/application"
	"github.com/tripcanvas/service-travel/internal/auth"
	"github.com/tripcanvas/service-travel/internal/middleware"
	"github.com/tripcanvas/service-travel/internal/response"
)

// FeedbackHandler handles HTTP requests for post-trip feedback.
type FeedbackHandler struct {
	service *application.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service *application.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// RegisterRoutes registers feedback routes on the given router group.
func (h *FeedbackHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	feedback := r.Group("/api/trips/:id/feedback")
	feedback.Use(middleware.Auth(jwtManager))
	{
		feedback.POST("", h.Submit)
		feedback.GET("", h.List)
	}
}

// Submit handles POST /api/trips/:id/feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	tripID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Submit(c.Request.Context(), tripID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List handles GET /api/trips/:id/feedback.
func (h *FeedbackHandler) List(c *gin.Context) {
	tripID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), tripID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
