package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestStatusActive    = "active"
	RequestStatusMatched   = "matched"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

// TutoringRequest is a student's posted tutoring need awaiting bids.
// MatchedTutorID is set if and only if the status is matched or completed;
// requests are never deleted, only status-transitioned.
type TutoringRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`

	Subject       string `gorm:"size:100;not null" json:"subject"`
	Topic         string `gorm:"size:255;not null" json:"topic"`
	Description   string `gorm:"type:text" json:"description"`
	DurationHours int    `gorm:"not null" json:"duration_hours"`

	PreferredPrice int64     `gorm:"not null" json:"preferred_price"`
	MaxPrice       int64     `gorm:"not null" json:"max_price"`
	SessionDate    time.Time `gorm:"not null" json:"session_date"`
	Location       string    `gorm:"size:255;not null" json:"location"`
	Urgency        string    `gorm:"size:10;not null;default:'medium'" json:"urgency"`

	Status         string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	MatchedTutorID *uuid.UUID `gorm:"type:uuid" json:"matched_tutor_id"`

	Student User `gorm:"foreignkey:StudentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *TutoringRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
