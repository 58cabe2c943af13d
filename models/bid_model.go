package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BidStatusPending        = "pending"
	BidStatusAccepted       = "accepted"
	BidStatusRejected       = "rejected"
	BidStatusCounterOffered = "counter_offered"
)

// Bid is a tutor's priced offer against a specific request. A tutor may hold
// at most one bid per request, and at most one bid per request ever reaches
// accepted.
type Bid struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bids_request_tutor" json:"request_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bids_request_tutor" json:"tutor_id"`

	OfferedPrice      int64  `gorm:"not null" json:"offered_price"`
	Message           string `gorm:"type:text" json:"message"`
	EstimatedDuration int    `gorm:"not null" json:"estimated_duration"`
	Status            string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CounterOffers []CounterOffer `gorm:"foreignkey:BidID" json:"counter_offers,omitempty"`

	Request TutoringRequest `gorm:"foreignkey:RequestID" json:"-"`
	Tutor   User            `gorm:"foreignkey:TutorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
