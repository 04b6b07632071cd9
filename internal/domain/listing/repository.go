package listing

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for listing repository operations.
//
// The visibility rule is split across the methods on purpose: Query
// returns approved listings only, ListByOwner returns every listing of one
// owner regardless of state, and ListPending returns the moderation queue.
// All listing sequences are ordered newest-first by creation time.
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, listingID uuid.UUID) (*Listing, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, listingID uuid.UUID) error

	Query(ctx context.Context, filter *Filter) ([]*Listing, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Listing, error)
	ListPending(ctx context.Context) ([]*Listing, error)

	SetState(ctx context.Context, listingID uuid.UUID, state State) error
	IncrementViews(ctx context.Context, listingID uuid.UUID) error
}

// Filter narrows public queries. Every supplied field combines with AND.
// Text is a plain substring match against title or description, with no
// case folding or normalization. An empty or "all" category means no
// category constraint.
type Filter struct {
	Text     string
	Category string
	City     string
}

// IsEmpty reports whether the filter constrains nothing, which makes the
// query equivalent to the default browse view.
func (f *Filter) IsEmpty() bool {
	return f.Text == "" && (f.Category == "" || f.Category == "all") && f.City == ""
}
