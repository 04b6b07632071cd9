package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hamrah-bazaar/internal/domain/user"
	"hamrah-bazaar/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements the user domain Repository interface
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	if u.Role == "" {
		u.Role = user.RoleUser
	}

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") {
			if strings.Contains(errStr, "email") {
				return user.ErrEmailTaken
			}
			return user.ErrPhoneTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Update domain entity with generated values
	u.ID = dbModel.ID
	u.CreatedAt = dbModel.CreatedAt
	u.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("phone = ?", phone).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*user.User, error) {
	var dbModels []models.UserModel
	err := r.db.DB.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	users := make([]*user.User, len(dbModels))
	for i := range dbModels {
		users[i] = toUserEntity(&dbModels[i])
	}

	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, name, bio, avatar *string) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if name != nil {
		updates["name"] = *name
	}
	if bio != nil {
		updates["bio"] = *bio
	}
	if avatar != nil {
		updates["avatar"] = *avatar
	}

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update user profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hashed": passwordHash,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID,
		Name:           u.Name,
		Phone:          u.Phone,
		Email:          u.Email,
		PasswordHashed: u.PasswordHashed,
		Role:           u.Role,
		Avatar:         u.Avatar,
		Bio:            u.Bio,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:             m.ID,
		Name:           m.Name,
		Phone:          m.Phone,
		Email:          m.Email,
		PasswordHashed: m.PasswordHashed,
		Role:           m.Role,
		Avatar:         m.Avatar,
		Bio:            m.Bio,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
