package models

import (
	"time"

	"github.com/google/uuid"
)

// ListingModel represents the database model for Listings
type ListingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	Price       int64     `gorm:"type:bigint;not null;check:price >= 0"`
	Currency    string    `gorm:"type:varchar(10);not null;default:'AFN'"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	City        string    `gorm:"type:varchar(50);not null;index"`
	ImageURL    *string   `gorm:"type:text"`
	ExtraImages *string   `gorm:"type:text"` // JSON-encoded ordered list
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	State       string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	Views       int64     `gorm:"type:bigint;not null;default:0"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`

	Owner *UserModel `gorm:"foreignKey:UserID"`
}

func (ListingModel) TableName() string {
	return "listings"
}
