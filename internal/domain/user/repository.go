package user

import "context"

// Repository defines the persistence contract for user accounts.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}

// PreferencesRepository defines the persistence contract for user
// preferences. Upsert replaces an existing record for the same user.
type PreferencesRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*Preferences, error)
	Upsert(ctx context.Context, p *Preferences) error
}
