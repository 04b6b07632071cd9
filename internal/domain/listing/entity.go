package listing

import (
	"time"

	"github.com/google/uuid"
)

// State represents the moderation state of a listing. Deletion is not a
// state: rejected or removed listings are deleted outright, so only rows in
// one of these two states ever exist.
type State string

const (
	StatePending  State = "pending"  // awaiting moderation, hidden from public views
	StateApproved State = "approved" // visible in browse and search
)

// Listing represents a classified ad in the domain
type Listing struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       int64
	Currency    string
	Category    string
	City        string
	ImageURL    *string
	ExtraImages []string
	UserID      uuid.UUID
	State       State
	Views       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsVisibleTo reports whether the listing may be shown to the given
// requester outside of the public browse views. Owners see their own
// pending listings; admins see everything.
func (l *Listing) IsVisibleTo(requesterID uuid.UUID, isAdmin bool) bool {
	if l.State == StateApproved {
		return true
	}
	return isAdmin || l.UserID == requesterID
}
