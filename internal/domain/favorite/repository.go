package favorite

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

// Repository defines the interface for favorite repository operations.
// Add is idempotent per (user, listing) pair.
type Repository interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Favorite, error)
}
