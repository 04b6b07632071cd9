package listing

import (
	"time"

	domainListing "hamrah-bazaar/internal/domain/listing"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=5000"`
	Price       int64    `json:"price" validate:"min=0"`
	Currency    string   `json:"currency" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	City        string   `json:"city" validate:"required"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=1000"`
	ExtraImages []string `json:"extra_images" validate:"omitempty,max=10,dive,max=1000"`
}

// UpdateListingRequest patches the owner-editable fields. Approval state is
// not among them: moderation goes through the admin operations only.
type UpdateListingRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Price       *int64   `json:"price" validate:"omitempty,min=0"`
	Currency    *string  `json:"currency"`
	Category    *string  `json:"category"`
	City        *string  `json:"city"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=1000"`
	ExtraImages []string `json:"extra_images" validate:"omitempty,max=10,dive,max=1000"`
}

type QueryRequest struct {
	Text     string `form:"query"`
	Category string `form:"category"`
	City     string `form:"city"`
}

type ReportRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type ListingResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	ImageURL    *string   `json:"image_url"`
	ExtraImages []string  `json:"extra_images,omitempty"`
	UserID      uuid.UUID `json:"user_id"`
	State       string    `json:"state"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReportResponse struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listing_id"`
	ReporterID uuid.UUID `json:"reporter_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToListingResponse(l *domainListing.Listing) *ListingResponse {
	if l == nil {
		return nil
	}
	return &ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Currency:    l.Currency,
		Category:    l.Category,
		City:        l.City,
		ImageURL:    l.ImageURL,
		ExtraImages: l.ExtraImages,
		UserID:      l.UserID,
		State:       string(l.State),
		Views:       l.Views,
		CreatedAt:   l.CreatedAt,
	}
}

func ToListingResponses(listings []*domainListing.Listing) []*ListingResponse {
	responses := make([]*ListingResponse, len(listings))
	for i, l := range listings {
		responses[i] = ToListingResponse(l)
	}
	return responses
}
