package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusReleased = "released"
	PaymentStatusRefunded = "refunded"
)

// Payment is the escrow record minted exactly once per accepted bid. All
// amounts are in minor units; Commission and TutorEarnings are snapshots
// taken at acceptance time, so later commission-rate changes never alter an
// existing payment.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index" json:"request_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_id"`

	Amount        int64 `gorm:"not null" json:"amount"`
	Commission    int64 `gorm:"not null" json:"commission"`
	TutorEarnings int64 `gorm:"not null" json:"tutor_earnings"`

	Status        string  `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentMethod string  `gorm:"size:20;not null;default:'e_wallet'" json:"payment_method"`
	TransactionID *string `gorm:"size:64" json:"transaction_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
