package message

import (
	"time"

	domainMessage "hamrah-bazaar/internal/domain/message"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ListingID  uuid.UUID `json:"listing_id" validate:"required"`
	ReceiverID uuid.UUID `json:"receiver_id" validate:"required"`
	Content    string    `json:"content" validate:"required,max=2000"`
}

type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listing_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func ToMessageResponse(m *domainMessage.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:         m.ID,
		ListingID:  m.ListingID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

func ToMessageResponses(messages []*domainMessage.Message) []*MessageResponse {
	responses := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToMessageResponse(m)
	}
	return responses
}
