package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hamrah-bazaar/internal/domain/favorite"
	"hamrah-bazaar/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

type FavoriteRepository struct {
	db *DB
}

func NewFavoriteRepository(db *DB) favorite.Repository {
	return &FavoriteRepository{db: db}
}

// Add inserts the (user, listing) pair. A duplicate insert is treated as
// success so toggling from a stale client state stays idempotent.
func (r *FavoriteRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	dbModel := &models.FavoriteModel{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return nil
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.FavoriteModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return favorite.ErrFavoriteNotFound
	}

	return nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.FavoriteModel{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return count > 0, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*favorite.Favorite, error) {
	var dbModels []models.FavoriteModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]*favorite.Favorite, len(dbModels))
	for i := range dbModels {
		favorites[i] = &favorite.Favorite{
			ID:        dbModels[i].ID,
			UserID:    dbModels[i].UserID,
			ListingID: dbModels[i].ListingID,
			CreatedAt: dbModels[i].CreatedAt,
		}
	}

	return favorites, nil
}
