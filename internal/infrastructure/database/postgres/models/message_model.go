package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageModel represents the database model for Messages
type MessageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ListingID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	Read       bool      `gorm:"default:false;not null"`
	CreatedAt  time.Time `gorm:"not null;index"`

	Listing  *ListingModel `gorm:"foreignKey:ListingID"`
	Sender   *UserModel    `gorm:"foreignKey:SenderID"`
	Receiver *UserModel    `gorm:"foreignKey:ReceiverID"`
}

func (MessageModel) TableName() string {
	return "messages"
}

// FavoriteModel represents the database model for Favorites
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_listing"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_listing"`
	CreatedAt time.Time `gorm:"not null"`

	Listing *ListingModel `gorm:"foreignKey:ListingID"`
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

// ReportModel represents the database model for Reports
type ReportModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ListingID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ReporterID uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason     string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (ReportModel) TableName() string {
	return "reports"
}
