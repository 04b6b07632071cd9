package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account in the domain. Phone is the primary
// identity; email is optional but unique when set. PasswordHashed never
// leaves the store boundary: responses are built from the remaining fields.
type User struct {
	ID             uuid.UUID
	Name           string
	Phone          string
	Email          *string
	PasswordHashed string
	Role           string
	Avatar         *string
	Bio            *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RefreshToken represents a refresh token entity
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsActive checks if the refresh token is active (not revoked and not expired)
func (rt *RefreshToken) IsActive() bool {
	return !rt.Revoked && !rt.IsExpired()
}
