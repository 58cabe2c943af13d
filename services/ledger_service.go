package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"gorm.io/gorm"
)

// LedgerService owns wallet-balance mutation. Every credit is an in-place
// add so concurrent releases to the same tutor never lose an update.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

func (s *LedgerService) Credit(userID uuid.UUID, amount int64) error {
	return s.CreditTx(s.db, userID, amount)
}

// CreditTx applies the credit on the given handle so callers can fold the
// wallet update into a surrounding transaction.
func (s *LedgerService) CreditTx(tx *gorm.DB, userID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: credit amount must be positive", ErrInvalidState)
	}

	result := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return nil
}
