package message

import (
	"context"
	"strings"
	"time"

	domainListing "hamrah-bazaar/internal/domain/listing"
	domainMessage "hamrah-bazaar/internal/domain/message"
	domainUser "hamrah-bazaar/internal/domain/user"
	"hamrah-bazaar/internal/logger"
	appErrors "hamrah-bazaar/pkg/errors"
	"hamrah-bazaar/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements listing-scoped messaging between buyers and sellers.
type Service struct {
	messageRepo domainMessage.Repository
	listingRepo domainListing.Repository
	userRepo    domainUser.Repository
}

func NewService(
	messageRepo domainMessage.Repository,
	listingRepo domainListing.Repository,
	userRepo domainUser.Repository,
) *Service {
	return &Service{
		messageRepo: messageRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

// Send delivers a message about a listing. The listing and the receiver
// must exist, and a user cannot message themselves.
func (s *Service) Send(ctx context.Context, senderID uuid.UUID, req *SendMessageRequest) (*MessageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	content := utils.SanitizeText(req.Content)
	if strings.TrimSpace(content) == "" {
		return nil, domainMessage.ErrEmptyContent
	}
	if senderID == req.ReceiverID {
		return nil, domainMessage.ErrSelfMessage
	}

	if _, err := s.listingRepo.GetByID(ctx, req.ListingID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	m := &domainMessage.Message{
		ListingID:  req.ListingID,
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    content,
		Read:       false,
		CreatedAt:  time.Now(),
	}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	logger.Info("Message sent",
		zap.String("message_id", m.ID.String()),
		zap.String("listing_id", req.ListingID.String()),
		zap.String("sender_id", senderID.String()),
		zap.String("receiver_id", req.ReceiverID.String()),
		zap.String("event", "message_sent"),
	)

	return ToMessageResponse(m), nil
}

// Conversation returns the message thread about a listing between the
// requester and the other user, oldest-first.
func (s *Service) Conversation(ctx context.Context, listingID, requesterID, otherID uuid.UUID) ([]*MessageResponse, error) {
	messages, err := s.messageRepo.ListConversation(ctx, listingID, requesterID, otherID)
	if err != nil {
		return nil, err
	}

	return ToMessageResponses(messages), nil
}

// Inbox returns every message the user sent or received, newest-first.
func (s *Service) Inbox(ctx context.Context, userID uuid.UUID) ([]*MessageResponse, error) {
	messages, err := s.messageRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToMessageResponses(messages), nil
}

// MarkRead flags a message as read. Only the receiver may do so.
func (s *Service) MarkRead(ctx context.Context, messageID, requesterID uuid.UUID) error {
	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if m.ReceiverID != requesterID {
		return appErrors.ErrInsufficientPermissions
	}
	if m.Read {
		return nil
	}

	return s.messageRepo.MarkRead(ctx, messageID)
}

// UnreadCount returns how many received messages the user has not read.
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (*UnreadCountResponse, error) {
	count, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UnreadCountResponse{Count: count}, nil
}
