package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hamrah-bazaar/internal/domain/message"
	"hamrah-bazaar/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) message.Repository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()

	dbModel := toMessageModel(m)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	m.ID = dbModel.ID
	m.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, messageID uuid.UUID) (*message.Message, error) {
	var dbModel models.MessageModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", messageID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, message.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return toMessageEntity(&dbModel), nil
}

func (r *MessageRepository) ListConversation(ctx context.Context, listingID, userA, userB uuid.UUID) ([]*message.Message, error) {
	var dbModels []models.MessageModel
	err := r.db.DB.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}

	return toMessageEntities(dbModels), nil
}

func (r *MessageRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*message.Message, error) {
	var dbModels []models.MessageModel
	err := r.db.DB.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return toMessageEntities(dbModels), nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, messageID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Model(&models.MessageModel{}).
		Where("id = ?", messageID).
		Update("read", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark message read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return message.ErrMessageNotFound
	}

	return nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.MessageModel{}).
		Where("receiver_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

func toMessageModel(m *message.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:         m.ID,
		ListingID:  m.ListingID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

func toMessageEntity(m *models.MessageModel) *message.Message {
	return &message.Message{
		ID:         m.ID,
		ListingID:  m.ListingID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

func toMessageEntities(dbModels []models.MessageModel) []*message.Message {
	messages := make([]*message.Message, len(dbModels))
	for i := range dbModels {
		messages[i] = toMessageEntity(&dbModels[i])
	}
	return messages
}
