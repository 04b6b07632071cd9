package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, bio, avatar *string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// RefreshTokenRepository defines the interface for refresh token operations
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenID uuid.UUID) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) error
}
