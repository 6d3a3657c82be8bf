package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripcanvas/service-travel/internal/application"
	"github.com/tripcanvas/service-travel/internal/auth"
	"github.com/tripcanvas/service-travel/internal/domain"
	"github.com/tripcanvas/service-travel/internal/middleware"
	"github.com/tripcanvas/service-travel/internal/response"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service *application.AuthService
	users   *application.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService, users *application.UserService) *AuthHandler {
	return &AuthHandler{service: service, users: users}
}

// RegisterRoutes registers auth routes on the given router group.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/me", middleware.Auth(jwtManager), h.Me)
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError("invalid " + name + " parameter")
	}
	return uint(id), nil
}
