package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hamrah-bazaar/internal/config"
	domainUser "hamrah-bazaar/internal/domain/user"
	"hamrah-bazaar/internal/logger"
	appErrors "hamrah-bazaar/pkg/errors"
	"hamrah-bazaar/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements user use cases
type Service struct {
	userRepo         domainUser.Repository
	refreshTokenRepo domainUser.RefreshTokenRepository
	config           *config.Config
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	refreshTokenRepo domainUser.RefreshTokenRepository,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		config:           cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	phone := utils.SanitizePhone(req.Phone)

	// Check if phone is already registered
	existing, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing phone",
			zap.String("phone", phone),
			zap.String("event", "registration_failed_duplicate_phone"),
		)
		return nil, domainUser.ErrPhoneTaken
	}

	if req.Email != nil {
		email := utils.SanitizeEmail(*req.Email)
		existing, err = s.userRepo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil {
			return nil, domainUser.ErrEmailTaken
		}
		req.Email = &email
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domainUser.User{
		Name:           utils.SanitizeString(req.Name),
		Phone:          phone,
		Email:          req.Email,
		PasswordHashed: hashedPassword,
		Role:           domainUser.RoleUser,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", u.ID.String()),
		zap.String("phone", u.Phone),
		zap.String("event", "user_registered"),
	)

	return s.IssueTokens(ctx, u)
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	phone := utils.SanitizePhone(req.Phone)

	u, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with unknown phone",
				zap.String("phone", phone),
				zap.String("event", "login_failed_unknown_phone"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", u.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
		zap.String("event", "login_success"),
	)

	return s.IssueTokens(ctx, u)
}

// Refresh exchanges a live refresh token for a new token pair. The old
// refresh token is revoked: each token is single-use.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	stored, err := s.refreshTokenRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	if !stored.IsActive() {
		return nil, appErrors.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	return s.IssueTokens(ctx, u)
}

// Revoke invalidates every refresh token of the user (logout everywhere).
func (s *Service) Revoke(ctx context.Context, userID uuid.UUID) error {
	return s.refreshTokenRepo.RevokeAllUserTokens(ctx, userID)
}

func (s *Service) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.Name != nil {
		sanitized := utils.SanitizeString(*req.Name)
		req.Name = &sanitized
	}
	if req.Bio != nil {
		sanitized := utils.SanitizeText(*req.Bio)
		req.Bio = &sanitized
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.Name, req.Bio, req.Avatar); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(u), nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(u.PasswordHashed, req.OldPassword) {
		return appErrors.ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	// Force re-authentication on other devices
	if err := s.refreshTokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		logger.Warn("Failed to revoke tokens after password change",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password changed",
		zap.String("user_id", userID.String()),
		zap.String("event", "password_changed"),
	)

	return nil
}

// ListAll returns every registered user. Admin-gated by the caller.
func (s *Service) ListAll(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}

	return responses, nil
}

// IssueTokens generates an access/refresh pair for the user and persists
// the refresh token. Exported so the verification flow can log a user in
// after a successful code check.
func (s *Service) IssueTokens(ctx context.Context, u *domainUser.User) (*AuthResponse, error) {
	tokenPair, err := utils.GenerateTokenPair(
		u.ID,
		u.Phone,
		u.Role,
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	refreshToken := &domainUser.RefreshToken{
		UserID:    u.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Now().Add(time.Duration(s.config.JWT.RefreshExpiryHours) * time.Hour),
		Revoked:   false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		User:         ToUserResponse(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}
