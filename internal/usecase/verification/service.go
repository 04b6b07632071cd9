package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"hamrah-bazaar/internal/config"
	domainUser "hamrah-bazaar/internal/domain/user"
	domainVerification "hamrah-bazaar/internal/domain/verification"
	"hamrah-bazaar/internal/infrastructure/sms"
	"hamrah-bazaar/internal/infrastructure/smtp"
	"hamrah-bazaar/internal/logger"
	userUsecase "hamrah-bazaar/internal/usecase/user"
	appErrors "hamrah-bazaar/pkg/errors"
	"hamrah-bazaar/pkg/utils"

	"go.uber.org/zap"
)

// Service implements the one-time verification code flow: issuing a code
// to a phone or email subject, checking it, and the password reset built
// on top of it.
type Service struct {
	store       domainVerification.Store
	userRepo    domainUser.Repository
	userService *userUsecase.Service
	mailer      smtp.Mailer
	smsSender   sms.Sender
	codeTTL     time.Duration
}

func NewService(
	store domainVerification.Store,
	userRepo domainUser.Repository,
	userService *userUsecase.Service,
	mailer smtp.Mailer,
	smsSender sms.Sender,
	cfg *config.Config,
) *Service {
	ttl := cfg.Verification.CodeTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		store:       store,
		userRepo:    userRepo,
		userService: userService,
		mailer:      mailer,
		smsSender:   smsSender,
		codeTTL:     ttl,
	}
}

// IssueCode generates a fresh six-digit code for the subject and delivers
// it over SMS or email. Issuing again before the previous code expires
// replaces it: at most one live code exists per subject.
func (s *Service) IssueCode(ctx context.Context, req *IssueCodeRequest) (*IssueCodeResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	subject, err := normalizeSubject(req.Subject)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	existing, err := s.findUser(ctx, subject)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, err
	}
	isNewUser := existing == nil

	// Sign-up through verification is phone-only. An unknown email subject
	// has no account to verify against.
	if isNewUser && !utils.IsPhoneSubject(subject) {
		return nil, domainUser.ErrUserNotFound
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	entry := &domainVerification.Code{
		Subject:   subject,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL),
		IsNewUser: isNewUser,
	}
	if err := s.store.Put(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.deliver(ctx, subject, code); err != nil {
		return nil, fmt.Errorf("failed to deliver verification code: %w", err)
	}

	logger.Info("Verification code issued",
		zap.String("subject", subject),
		zap.Bool("is_new_user", isNewUser),
		zap.String("event", "verification_code_issued"),
	)

	return &IssueCodeResponse{
		Subject:          subject,
		IsNewUser:        isNewUser,
		ExpiresInSeconds: int(s.codeTTL.Seconds()),
	}, nil
}

// VerifyCode checks the submitted code against the live one. An expired or
// mismatched code leaves the stored entry untouched so the user may retry;
// a successful check consumes it. When the subject has no account yet a
// new one is registered before login.
func (s *Service) VerifyCode(ctx context.Context, req *VerifyCodeRequest) (*userUsecase.AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	subject, err := normalizeSubject(req.Subject)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	entry, err := s.checkCode(ctx, subject, req.Code)
	if err != nil {
		return nil, err
	}

	var u *domainUser.User
	if entry.IsNewUser {
		u, err = s.registerVerified(ctx, subject, req.Name, req.Password)
		if err != nil {
			return nil, err
		}
	} else {
		u, err = s.findUser(ctx, subject)
		if err != nil {
			return nil, err
		}
	}

	if err := s.store.Consume(ctx, subject); err != nil {
		return nil, err
	}

	logger.Info("Verification code accepted",
		zap.String("subject", subject),
		zap.String("user_id", u.ID.String()),
		zap.String("event", "verification_code_accepted"),
	)

	return s.userService.IssueTokens(ctx, u)
}

// ForgotPassword issues a reset code for an existing account. To avoid
// leaking which subjects are registered, an unknown subject is reported as
// success without issuing anything.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	subject, err := normalizeSubject(req.Subject)
	if err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	if _, err := s.findUser(ctx, subject); err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Password reset requested for unknown subject",
				zap.String("subject", subject),
				zap.String("event", "password_reset_unknown_subject"),
			)
			return nil
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	entry := &domainVerification.Code{
		Subject:   subject,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL),
		IsNewUser: false,
	}
	if err := s.store.Put(ctx, entry); err != nil {
		return err
	}

	if err := s.deliver(ctx, subject, code); err != nil {
		return fmt.Errorf("failed to deliver verification code: %w", err)
	}

	logger.Info("Password reset code issued",
		zap.String("subject", subject),
		zap.String("event", "password_reset_code_issued"),
	)

	return nil
}

// ResetPassword verifies the reset code and replaces the password. All
// refresh tokens of the account are revoked afterwards.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	subject, err := normalizeSubject(req.Subject)
	if err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	if _, err := s.checkCode(ctx, subject, req.Code); err != nil {
		return err
	}

	u, err := s.findUser(ctx, subject)
	if err != nil {
		return err
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return err
	}

	if err := s.store.Consume(ctx, subject); err != nil {
		return err
	}

	if err := s.userService.Revoke(ctx, u.ID); err != nil {
		logger.Warn("Failed to revoke tokens after password reset",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password reset completed",
		zap.String("user_id", u.ID.String()),
		zap.String("event", "password_reset_completed"),
	)

	return nil
}

// checkCode fetches the live code for the subject and compares. The entry
// is left in place on every failure path.
func (s *Service) checkCode(ctx context.Context, subject, submitted string) (*domainVerification.Code, error) {
	entry, err := s.store.Get(ctx, subject)
	if err != nil {
		if errors.Is(err, domainVerification.ErrCodeNotFound) {
			return nil, appErrors.ErrCodeInvalid
		}
		return nil, err
	}

	if entry.IsExpired(time.Now()) {
		return nil, appErrors.ErrCodeExpired
	}
	if entry.Code != submitted {
		logger.Warn("Verification code mismatch",
			zap.String("subject", subject),
			zap.String("event", "verification_code_mismatch"),
		)
		return nil, appErrors.ErrCodeInvalid
	}

	return entry, nil
}

// registerVerified creates the account a successful first-time verification
// stands for. Without a chosen password a random one is set; the user can
// replace it through the reset flow.
func (s *Service) registerVerified(ctx context.Context, phone, name, password string) (*domainUser.User, error) {
	if name == "" {
		name = phone
	}
	if password == "" {
		random, err := utils.NewRefreshToken()
		if err != nil {
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		password = random
	} else if err := utils.ValidatePassword(password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domainUser.User{
		Name:           utils.SanitizeString(name),
		Phone:          phone,
		PasswordHashed: hashed,
		Role:           domainUser.RoleUser,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User registered via verification",
		zap.String("user_id", u.ID.String()),
		zap.String("phone", phone),
		zap.String("event", "user_registered_verified"),
	)

	return u, nil
}

func (s *Service) findUser(ctx context.Context, subject string) (*domainUser.User, error) {
	if utils.IsPhoneSubject(subject) {
		return s.userRepo.GetByPhone(ctx, subject)
	}
	return s.userRepo.GetByEmail(ctx, subject)
}

func (s *Service) deliver(ctx context.Context, subject, code string) error {
	if utils.IsPhoneSubject(subject) {
		message := fmt.Sprintf("Your Hamrah Bazaar verification code is %s. It expires in %d minutes.",
			code, int(s.codeTTL.Minutes()))
		return s.smsSender.SendSMS(ctx, subject, message)
	}

	body := fmt.Sprintf("Your Hamrah Bazaar verification code is %s.\n\nIt expires in %d minutes. If you did not request it, ignore this email.",
		code, int(s.codeTTL.Minutes()))
	return s.mailer.SendEmail(subject, "Your verification code", body)
}

func normalizeSubject(subject string) (string, error) {
	if utils.IsPhoneSubject(subject) {
		phone := utils.SanitizePhone(subject)
		if phone == "" {
			return "", appErrors.ErrInvalidPhone
		}
		return phone, nil
	}

	email := utils.SanitizeEmail(subject)
	if !utils.IsValidEmail(email) {
		return "", appErrors.ErrInvalidEmail
	}
	return email, nil
}

// generateCode returns a uniformly random six-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
