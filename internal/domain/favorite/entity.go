package favorite

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a (user, listing) pair. At most one row exists per pair.
type Favorite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ListingID uuid.UUID
	CreatedAt time.Time
}
