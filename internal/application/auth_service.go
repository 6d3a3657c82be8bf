package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tripcanvas/service-travel/internal/auth"
	"github.com/tripcanvas/service-travel/internal/domain"
	userDomain "github.com/tripcanvas/service-travel/internal/domain/user"
)

// RegisterRequest holds the data needed to create a user account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest holds the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued access token and the account it belongs to.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// AuthService handles registration and login.
type AuthService struct {
	userRepo userDomain.Repository
	jwt      *auth.JWTManager
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo userDomain.Repository, jwt *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: jwt, logger: logger}
}

// Register creates a user account and issues an access token. A duplicate
// email yields a conflict.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	if existing != nil {
		return nil, domain.NewConflictError("an account with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := userDomain.NewUser(req.Email, hash, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	token, err := s.jwt.Generate(u.ID(), u.Email())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", u.ID()))
	return &AuthResponse{Token: token, User: toUserDTO(u)}, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.NewValidationError("invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, u.PasswordHash()) {
		return nil, domain.NewValidationError("invalid email or password")
	}

	token, err := s.jwt.Generate(u.ID(), u.Email())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{Token: token, User: toUserDTO(u)}, nil
}
