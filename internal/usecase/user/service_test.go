package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"hamrah-bazaar/internal/config"
	domainUser "hamrah-bazaar/internal/domain/user"
	appErrors "hamrah-bazaar/pkg/errors"
	"hamrah-bazaar/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	for _, existing := range r.users {
		if existing.Phone == u.Phone {
			return domainUser.ErrPhoneTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*domainUser.User, error) {
	var out []*domainUser.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, bio, avatar *string) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if bio != nil {
		u.Bio = bio
	}
	if avatar != nil {
		u.Avatar = avatar
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHashed = hash
	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[uuid.UUID]*domainUser.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uuid.UUID]*domainUser.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, t *domainUser.RefreshToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	r.tokens[t.ID] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) GetByToken(_ context.Context, token string) (*domainUser.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domainUser.ErrTokenInvalid
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uuid.UUID) error {
	t, ok := r.tokens[id]
	if !ok {
		return domainUser.ErrTokenInvalid
	}
	t.Revoked = true
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllUserTokens(_ context.Context, userID uuid.UUID) error {
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context, _ time.Duration) error {
	for id, t := range r.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) activeCount(userID uuid.UUID) int {
	count := 0
	for _, t := range r.tokens {
		if t.UserID == userID && !t.Revoked {
			count++
		}
	}
	return count
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			ExpiryHours:        1,
			RefreshExpiryHours: 24,
		},
	}
}

func newTestService() (*Service, *fakeUserRepo, *fakeRefreshTokenRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	return NewService(userRepo, tokenRepo, testConfig()), userRepo, tokenRepo
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Ahmad Karimi",
		Phone:    "+93700000001",
		Password: "str0ngpass",
	}
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc, _, tokenRepo := newTestService()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, domainUser.RoleUser, resp.User.Role)
	assert.Equal(t, 1, tokenRepo.activeCount(resp.User.ID))

	claims, err := utils.ValidateToken(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "+93700000001", claims.Phone)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, domainUser.ErrPhoneTaken)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newTestService()

	req := validRegisterRequest()
	req.Password = "12345678"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "WEAK_PASSWORD", appErr.Code)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Phone:    "+93700000001",
		Password: "str0ngpass",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Phone:    "+93700000001",
		Password: "wrongpass1",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownPhone(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Phone:    "+93799999999",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token is single-use
	_, err = svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc, userRepo, tokenRepo := newTestService()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	userID := registered.User.ID

	err = svc.ChangePassword(context.Background(), userID, &ChangePasswordRequest{
		OldPassword: "str0ngpass",
		NewPassword: "newpass123",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, tokenRepo.activeCount(userID))

	stored, err := userRepo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "newpass123"))
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	svc, _, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), registered.User.ID, &ChangePasswordRequest{
		OldPassword: "wrongpass1",
		NewPassword: "newpass123",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	name := "Ahmad K."
	bio := "Selling household items in Kabul"
	updated, err := svc.UpdateProfile(context.Background(), registered.User.ID, &UpdateProfileRequest{
		Name: &name,
		Bio:  &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
}
