package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CounterOffer is one round of price negotiation on a bid, ordered by
// creation time.
type CounterOffer struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BidID      uuid.UUID `gorm:"type:uuid;not null;index" json:"bid_id"`
	ProposedBy uuid.UUID `gorm:"type:uuid;not null" json:"proposed_by"`
	Price      int64     `gorm:"not null" json:"price"`
	Message    string    `gorm:"type:text" json:"message"`

	CreatedAt time.Time `json:"created_at"`
}

func (co *CounterOffer) BeforeCreate(tx *gorm.DB) error {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return nil
}
