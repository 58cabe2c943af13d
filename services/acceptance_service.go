package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"gorm.io/gorm"
)

// CommissionRateBP is the fixed platform fee in basis points (15%).
// Amounts are integer minor units, so the derived earnings always satisfy
// commission + tutor_earnings == amount.
const CommissionRateBP = 1500

// AcceptanceService executes the multi-entity transition triggered by a
// student accepting a bid: the winning bid, every rival bid, the parent
// request and a freshly minted payment are reconciled in one transaction.
type AcceptanceService struct {
	db *gorm.DB
}

func NewAcceptanceService(db *gorm.DB) *AcceptanceService {
	return &AcceptanceService{db: db}
}

// AcceptBid marks the bid accepted, matches the request to the bid's tutor,
// rejects every open rival bid and creates the escrow payment. All four
// effects commit together or not at all.
//
// Serialization of concurrent acceptances happens on the conditional
// status updates: each claim is an update-if-status-equals, and a claim
// that matches zero rows aborts the whole transaction. Two acceptances on
// the same request can therefore never both mint a payment.
func (s *AcceptanceService) AcceptBid(bidID, studentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bid models.Bid
		if err := tx.First(&bid, "id = ?", bidID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bid not found", ErrNotFound)
			}
			return err
		}

		var request models.TutoringRequest
		if err := tx.First(&request, "id = ?", bid.RequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: request not found", ErrNotFound)
			}
			return err
		}

		if request.StudentID != studentID {
			return fmt.Errorf("%w: only the request owner can accept a bid", ErrForbidden)
		}

		// Claim the winning bid first.
		result := tx.Model(&models.Bid{}).
			Where("id = ? AND status = ?", bid.ID, models.BidStatusPending).
			Update("status", models.BidStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: bid no longer pending", ErrInvalidState)
		}

		// Claim the request. A concurrent acceptance of a rival bid loses
		// here and rolls back its bid claim.
		result = tx.Model(&models.TutoringRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusActive).
			Updates(map[string]interface{}{
				"status":           models.RequestStatusMatched,
				"matched_tutor_id": bid.TutorID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: request already matched", ErrInvalidState)
		}

		// Rivals still open go to rejected; bids already settled are left
		// untouched.
		if err := tx.Model(&models.Bid{}).
			Where("request_id = ? AND id <> ? AND status IN ?",
				request.ID, bid.ID,
				[]string{models.BidStatusPending, models.BidStatusCounterOffered}).
			Update("status", models.BidStatusRejected).Error; err != nil {
			return err
		}

		amount := bid.OfferedPrice
		commission := amount * CommissionRateBP / 10000
		payment = models.Payment{
			RequestID:     request.ID,
			StudentID:     studentID,
			TutorID:       bid.TutorID,
			Amount:        amount,
			Commission:    commission,
			TutorEarnings: amount - commission,
			Status:        models.PaymentStatusPending,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
