package user

import (
	"strings"
	"time"

	"github.com/tripcanvas/service-travel/internal/domain"
)

// User is the account aggregate root.
type User struct {
	id              uint
	email           string
	passwordHash    string
	name            string
	provider        string
	providerID      string
	profileImageURL string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewUser creates a user with validated required fields. The password hash
// must already be computed by the caller.
func NewUser(email, passwordHash, name string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name is required")
	}

	now := time.Now().UTC()
	return &User{
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(
	id uint,
	email, passwordHash, name, provider, providerID, profileImageURL string,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:              id,
		email:           email,
		passwordHash:    passwordHash,
		name:            name,
		provider:        provider,
		providerID:      providerID,
		profileImageURL: profileImageURL,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uint                { return u.id }
func (u *User) Email() string           { return u.email }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Name() string            { return u.name }
func (u *User) Provider() string        { return u.provider }
func (u *User) ProviderID() string      { return u.providerID }
func (u *User) ProfileImageURL() string { return u.profileImageURL }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }

// --- Behavior ---

// SetID assigns the persistence-generated identifier after a save.
func (u *User) SetID(id uint) { u.id = id }

// UpdateProfile applies partial profile updates.
func (u *User) UpdateProfile(name, profileImageURL string) {
	if strings.TrimSpace(name) != "" {
		u.name = name
	}
	if profileImageURL != "" {
		u.profileImageURL = profileImageURL
	}
	u.updatedAt = time.Now().UTC()
}
