package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tripcanvas/service-travel/internal/domain"
	userDomain "github.com/tripcanvas/service-travel/internal/domain/user"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID              uint      `gorm:"primaryKey"`
	Email           string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash    string    `gorm:"not null;size:100"`
	Name            string    `gorm:"not null;size:100"`
	Provider        string    `gorm:"size:30"`
	ProviderID      string    `gorm:"size:255"`
	ProfileImageURL string    `gorm:"size:500"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}

// UserPreferencesModel is the GORM model for the user_preferences table.
type UserPreferencesModel struct {
	ID                  uint            `gorm:"primaryKey"`
	UserID              uint            `gorm:"uniqueIndex;not null"`
	TravelStyle         string          `gorm:"size:50"`
	BudgetRangeMin      *int            `gorm:""`
	BudgetRangeMax      *int            `gorm:""`
	PreferredCategories json.RawMessage `gorm:"type:jsonb"`
}

// TableName returns the table name for the GORM model.
func (UserPreferencesModel) TableName() string {
	return "user_preferences"
}

// GormUserRepository is the GORM-based implementation of user.Repository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by its unique identifier.
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", strconv.FormatUint(uint64(id), 10))
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toDomainUser(&model), nil
}

// FindByEmail retrieves a user by email.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

// Save persists a new user and assigns the generated id back.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	u.SetID(model.ID)
	return nil
}

// Update persists changes to an existing user.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":              model.Name,
			"profile_image_url": model.ProfileImageURL,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", strconv.FormatUint(uint64(model.ID), 10))
	}
	return nil
}

// GormPreferencesRepository is the GORM-based implementation of
// user.PreferencesRepository.
type GormPreferencesRepository struct {
	db *gorm.DB
}

// NewGormPreferencesRepository creates a new GormPreferencesRepository.
func NewGormPreferencesRepository(db *gorm.DB) *GormPreferencesRepository {
	return &GormPreferencesRepository{db: db}
}

// FindByUserID retrieves the preferences of a user.
func (r *GormPreferencesRepository) FindByUserID(ctx context.Context, userID uint) (*userDomain.Preferences, error) {
	var model UserPreferencesModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Preferences", strconv.FormatUint(uint64(userID), 10))
		}
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}
	return &userDomain.Preferences{
		ID:                  model.ID,
		UserID:              model.UserID,
		TravelStyle:         model.TravelStyle,
		BudgetRangeMin:      model.BudgetRangeMin,
		BudgetRangeMax:      model.BudgetRangeMax,
		PreferredCategories: model.PreferredCategories,
	}, nil
}

// Upsert inserts or replaces the preferences record for a user.
func (r *GormPreferencesRepository) Upsert(ctx context.Context, p *userDomain.Preferences) error {
	model := &UserPreferencesModel{
		UserID:              p.UserID,
		TravelStyle:         p.TravelStyle,
		BudgetRangeMin:      p.BudgetRangeMin,
		BudgetRangeMax:      p.BudgetRangeMax,
		PreferredCategories: p.PreferredCategories,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"travel_style", "budget_range_min", "budget_range_max", "preferred_categories",
			}),
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	p.ID = model.ID
	return nil
}

// --- Conversion Helpers ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:              u.ID(),
		Email:           u.Email(),
		PasswordHash:    u.PasswordHash(),
		Name:            u.Name(),
		Provider:        u.Provider(),
		ProviderID:      u.ProviderID(),
		ProfileImageURL: u.ProfileImageURL(),
		CreatedAt:       u.CreatedAt(),
		UpdatedAt:       u.UpdatedAt(),
	}
}

func toDomainUser(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(
		m.ID,
		m.Email,
		m.PasswordHash,
		m.Name,
		m.Provider,
		m.ProviderID,
		m.ProfileImageURL,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
