package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comic struct {
	ID            string     `json:"id" bson:"_id" gorm:"primaryKey;size:24"`
	Title         string     `json:"title" bson:"title" gorm:"not null;index"`
	Author        string     `json:"author" bson:"author" gorm:"not null;index"`
	Issue         *int       `json:"issue,omitempty" bson:"issue,omitempty"`
	Volume        *int       `json:"volume,omitempty" bson:"volume,omitempty" gorm:"index"`
	Publisher     *string    `json:"publisher,omitempty" bson:"publisher,omitempty"`
	ReleaseDate   *time.Time `json:"releaseDate,omitempty" bson:"release_date,omitempty" gorm:"type:date"`
	Rating        *float64   `json:"rating,omitempty" bson:"rating,omitempty" gorm:"type:decimal(4,2)"`
	PurchasePrice *float64   `json:"purchasePrice,omitempty" bson:"purchase_price,omitempty" gorm:"type:decimal(12,2)"`
	CurrentValue  *float64   `json:"currentValue,omitempty" bson:"current_value,omitempty" gorm:"type:decimal(12,2)"`
	Condition     *Condition `json:"condition,omitempty" bson:"condition,omitempty" gorm:"size:16"`
	IsRead        bool       `json:"isRead" bson:"is_read"`
	Genre         *string    `json:"genre,omitempty" bson:"genre,omitempty"`
	Tags          []string   `json:"tags" bson:"tags" gorm:"serializer:json"`
	Notes         *string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updated_at" gorm:"autoUpdateTime:false"`
}

func (Comic) TableName() string {
	return "comics"
}

// NewID returns a fresh identity token. Both store backends use the ObjectID
// hex shape so ids stay portable between them.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id has the identity-token shape (24 hex chars).
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
