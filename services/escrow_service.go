package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"gorm.io/gorm"
)

// EscrowService drives a payment from pending through paid to released.
// Capture is simulated: no gateway is contacted, but the status guards are
// real so a duplicate capture or release always surfaces instead of
// silently overwriting.
type EscrowService struct {
	db     *gorm.DB
	ledger *LedgerService
}

func NewEscrowService(db *gorm.DB, ledger *LedgerService) *EscrowService {
	return &EscrowService{db: db, ledger: ledger}
}

// Capture confirms the student's funds are secured and stamps a transaction
// id. Only a pending payment can be captured; repeating the call fails
// rather than masking a duplicate charge.
func (s *EscrowService) Capture(paymentID uuid.UUID) (*models.Payment, error) {
	txn := uuid.New()
	transactionID := fmt.Sprintf("txn_%x", txn[:4])

	result := s.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", paymentID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusPaid,
			"transaction_id": transactionID,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	var payment models.Payment
	if err := s.db.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment not found", ErrNotFound)
		}
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: payment already captured", ErrInvalidState)
	}
	return &payment, nil
}

// Release pays the tutor's earnings out of escrow. The status flip and the
// wallet credit share one transaction, so neither is ever visible without
// the other, and a repeated release credits nothing.
func (s *EscrowService) Release(paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment not found", ErrNotFound)
			}
			return err
		}

		result := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", paymentID, models.PaymentStatusPaid).
			Update("status", models.PaymentStatusReleased)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: payment not captured", ErrInvalidState)
		}

		if err := s.ledger.CreditTx(tx, payment.TutorID, payment.TutorEarnings); err != nil {
			return err
		}
		payment.Status = models.PaymentStatusReleased
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
