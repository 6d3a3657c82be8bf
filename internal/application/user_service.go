package application

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	userDomain "github.com/tripcanvas/service-travel/internal/domain/user"
)

// UserDTO is the response representation of a user account. The password
// hash never leaves the service layer.
type UserDTO struct {
	ID              uint   `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Provider        string `json:"provider,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// UpdateProfileRequest holds the mutable profile fields.
type UpdateProfileRequest struct {
	Name            string `json:"name"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// PreferencesRequest holds a user's travel preferences for an upsert.
type PreferencesRequest struct {
	TravelStyle         string          `json:"travelStyle"`
	BudgetRangeMin      *int            `json:"budgetRangeMin"`
	BudgetRangeMax      *int            `json:"budgetRangeMax"`
	PreferredCategories json.RawMessage `json:"preferredCategories"`
}

// PreferencesDTO is the response representation of travel preferences.
type PreferencesDTO struct {
	UserID              uint            `json:"userId"`
	TravelStyle         string          `json:"travelStyle,omitempty"`
	BudgetRangeMin      *int            `json:"budgetRangeMin,omitempty"`
	BudgetRangeMax      *int            `json:"budgetRangeMax,omitempty"`
	PreferredCategories json.RawMessage `json:"preferredCategories,omitempty"`
}

// UserService handles profile and preferences use cases.
type UserService struct {
	userRepo  userDomain.Repository
	prefsRepo userDomain.PreferencesRepository
	logger    *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo userDomain.Repository, prefsRepo userDomain.PreferencesRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, prefsRepo: prefsRepo, logger: logger}
}

// GetProfile retrieves a user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*UserDTO, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// UpdateProfile applies partial profile updates.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*UserDTO, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.UpdateProfile(req.Name, req.ProfileImageURL)
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := toUserDTO(u)
	return &dto, nil
}

// GetPreferences retrieves a user's travel preferences.
func (s *UserService) GetPreferences(ctx context.Context, userID uint) (*PreferencesDTO, error) {
	p, err := s.prefsRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPreferencesDTO(p), nil
}

// SavePreferences validates and upserts a user's travel preferences.
func (s *UserService) SavePreferences(ctx context.Context, userID uint, req PreferencesRequest) (*PreferencesDTO, error) {
	p, err := userDomain.NewPreferences(userID, req.TravelStyle, req.BudgetRangeMin, req.BudgetRangeMax, req.PreferredCategories)
	if err != nil {
		return nil, err
	}
	if err := s.prefsRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return toPreferencesDTO(p), nil
}

// --- Conversion Helpers ---

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:              u.ID(),
		Email:           u.Email(),
		Name:            u.Name(),
		Provider:        u.Provider(),
		ProfileImageURL: u.ProfileImageURL(),
		CreatedAt:       u.CreatedAt().UTC().Format(time.RFC3339),
	}
}

func toPreferencesDTO(p *userDomain.Preferences) *PreferencesDTO {
	return &PreferencesDTO{
		UserID:              p.UserID,
		TravelStyle:         p.TravelStyle,
		BudgetRangeMin:      p.BudgetRangeMin,
		BudgetRangeMax:      p.BudgetRangeMax,
		PreferredCategories: p.PreferredCategories,
	}
}
