package message

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat message exchanged between two users about a
// listing.
type Message struct {
	ID         uuid.UUID
	ListingID  uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	Read       bool
	CreatedAt  time.Time
}
