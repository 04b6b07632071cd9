package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hamrah-bazaar/internal/domain/listing"
	"hamrah-bazaar/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingRepository struct {
	db *DB
}

func NewListingRepository(db *DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	l.ID = uuid.New()
	l.CreatedAt = time.Now()
	l.UpdatedAt = time.Now()
	if l.State == "" {
		l.State = listing.StatePending
	}

	dbModel, err := toListingModel(l)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	l.ID = dbModel.ID
	l.CreatedAt = dbModel.CreatedAt
	l.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, listingID uuid.UUID) (*listing.Listing, error) {
	var dbModel models.ListingModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", listingID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, listing.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return toListingEntity(&dbModel)
}

func (r *ListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	l.UpdatedAt = time.Now()

	extraImages, err := encodeExtraImages(l.ExtraImages)
	if err != nil {
		return err
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ListingModel{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"title":        l.Title,
			"description":  l.Description,
			"price":        l.Price,
			"currency":     l.Currency,
			"category":     l.Category,
			"city":         l.City,
			"image_url":    l.ImageURL,
			"extra_images": extraImages,
			"updated_at":   l.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return listing.ErrListingNotFound
	}

	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, listingID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", listingID).
		Delete(&models.ListingModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return listing.ErrListingNotFound
	}

	return nil
}

// Query answers the public browse and search views. Only approved listings
// are returned; supplied filters combine with AND. The text filter is a
// plain case-sensitive substring match over title and description (LIKE,
// not ILIKE) to keep the behavior of the original storefront.
func (r *ListingRepository) Query(ctx context.Context, filter *listing.Filter) ([]*listing.Listing, error) {
	db := r.db.DB.WithContext(ctx).Model(&models.ListingModel{}).
		Where("state = ?", string(listing.StateApproved))

	if filter != nil {
		if filter.Text != "" {
			pattern := "%" + filter.Text + "%"
			db = db.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
		}
		if filter.Category != "" && filter.Category != "all" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.City != "" {
			db = db.Where("city = ?", filter.City)
		}
	}

	var dbModels []models.ListingModel
	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	return toListingEntities(dbModels)
}

func (r *ListingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*listing.Listing, error) {
	var dbModels []models.ListingModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list listings by owner: %w", err)
	}

	return toListingEntities(dbModels)
}

func (r *ListingRepository) ListPending(ctx context.Context) ([]*listing.Listing, error) {
	var dbModels []models.ListingModel
	err := r.db.DB.WithContext(ctx).
		Where("state = ?", string(listing.StatePending)).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending listings: %w", err)
	}

	return toListingEntities(dbModels)
}

// SetState transitions the listing's moderation state. The write is a plain
// UPDATE so re-applying an already-reached state succeeds, which makes
// approve idempotent and safe to retry.
func (r *ListingRepository) SetState(ctx context.Context, listingID uuid.UUID, state listing.State) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ListingModel{}).
		Where("id = ?", listingID).
		Updates(map[string]interface{}{
			"state":      string(state),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set listing state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return listing.ErrListingNotFound
	}

	return nil
}

func (r *ListingRepository) IncrementViews(ctx context.Context, listingID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ListingModel{}).
		Where("id = ?", listingID).
		Update("views", gorm.Expr("views + 1"))

	if result.Error != nil {
		return fmt.Errorf("failed to increment views: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return listing.ErrListingNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toListingModel(l *listing.Listing) (*models.ListingModel, error) {
	extraImages, err := encodeExtraImages(l.ExtraImages)
	if err != nil {
		return nil, err
	}
	return &models.ListingModel{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Currency:    l.Currency,
		Category:    l.Category,
		City:        l.City,
		ImageURL:    l.ImageURL,
		ExtraImages: extraImages,
		UserID:      l.UserID,
		State:       string(l.State),
		Views:       l.Views,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, nil
}

func toListingEntity(m *models.ListingModel) (*listing.Listing, error) {
	extraImages, err := decodeExtraImages(m.ExtraImages)
	if err != nil {
		return nil, err
	}
	return &listing.Listing{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Currency:    m.Currency,
		Category:    m.Category,
		City:        m.City,
		ImageURL:    m.ImageURL,
		ExtraImages: extraImages,
		UserID:      m.UserID,
		State:       listing.State(m.State),
		Views:       m.Views,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func toListingEntities(dbModels []models.ListingModel) ([]*listing.Listing, error) {
	listings := make([]*listing.Listing, len(dbModels))
	for i := range dbModels {
		l, err := toListingEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		listings[i] = l
	}
	return listings, nil
}

func encodeExtraImages(images []string) (*string, error) {
	if len(images) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extra images: %w", err)
	}
	encoded := string(raw)
	return &encoded, nil
}

func decodeExtraImages(raw *string) ([]string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var images []string
	if err := json.Unmarshal([]byte(*raw), &images); err != nil {
		return nil, fmt.Errorf("failed to decode extra images: %w", err)
	}
	return images, nil
}
