package message

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for message repository operations
type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, messageID uuid.UUID) (*Message, error)
	// ListConversation returns all messages about a listing between two
	// users, oldest-first.
	ListConversation(ctx context.Context, listingID, userA, userB uuid.UUID) ([]*Message, error)
	// ListForUser returns every message sent to or by the user, newest-first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Message, error)
	MarkRead(ctx context.Context, messageID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
