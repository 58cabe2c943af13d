package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Role     string    `gorm:"size:20;not null;default:'student'" json:"role"`

	Avatar   *string        `gorm:"size:255" json:"avatar"`
	Phone    *string        `gorm:"size:30" json:"phone"`
	Bio      *string        `gorm:"type:text" json:"bio"`
	Subjects datatypes.JSON `json:"subjects"`
	Ratings  datatypes.JSON `json:"ratings"`

	// WalletBalance is in minor units and is only ever mutated through the
	// ledger credit, never by a raw field write.
	WalletBalance int64 `gorm:"not null;default:0" json:"wallet_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
