package user

import (
	"time"

	domainUser "hamrah-bazaar/internal/domain/user"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=255"`
	Phone    string  `json:"phone" validate:"required,phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=255"`
	Bio    *string `json:"bio" validate:"omitempty,max=1000"`
	Avatar *string `json:"avatar" validate:"omitempty,max=1000"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UserResponse is the outward shape of a user. The password hash is
// deliberately absent: it never crosses the store boundary.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    int64         `json:"expires_at"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}
