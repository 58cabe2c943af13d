package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"gorm.io/gorm"
)

// BidService gates bid creation and price negotiation against the parent
// request's state and the one-bid-per-tutor rule.
type BidService struct {
	db *gorm.DB
}

func NewBidService(db *gorm.DB) *BidService {
	return &BidService{db: db}
}

type SubmitBidInput struct {
	RequestID         uuid.UUID
	TutorID           uuid.UUID
	OfferedPrice      int64
	Message           string
	EstimatedDuration int
}

// SubmitBid inserts a new pending bid. It touches nothing else: the parent
// request only changes through acceptance.
func (s *BidService) SubmitBid(in SubmitBidInput) (*models.Bid, error) {
	var request models.TutoringRequest
	if err := s.db.First(&request, "id = ?", in.RequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: request not found", ErrNotFound)
		}
		return nil, err
	}
	if request.Status != models.RequestStatusActive {
		return nil, fmt.Errorf("%w: request not open for bidding", ErrInvalidState)
	}

	bid := models.Bid{
		RequestID:         in.RequestID,
		TutorID:           in.TutorID,
		OfferedPrice:      in.OfferedPrice,
		Message:           in.Message,
		EstimatedDuration: in.EstimatedDuration,
		Status:            models.BidStatusPending,
	}
	// The unique (request_id, tutor_id) index arbitrates the one-bid-per-
	// tutor rule, so racing submissions cannot both land.
	if err := s.db.Create(&bid).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: duplicate bid", ErrConflict)
		}
		return nil, err
	}
	return &bid, nil
}

// CounterOffer records one negotiation round on a bid. Either side of the
// request may propose; a tutor proposal also moves the bid's offered price.
func (s *BidService) CounterOffer(bidID, callerID uuid.UUID, price int64, message string) (*models.Bid, error) {
	var bid models.Bid
	err := s.db.Transaction(func(tx *gorm.DB) error {
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

		if callerID != bid.TutorID && callerID != request.StudentID {
			return fmt.Errorf("%w: caller is not part of this negotiation", ErrForbidden)
		}
		if request.Status != models.RequestStatusActive {
			return fmt.Errorf("%w: request not open for bidding", ErrInvalidState)
		}

		offer := models.CounterOffer{
			BidID:      bid.ID,
			ProposedBy: callerID,
			Price:      price,
			Message:    message,
		}
		if err := tx.Create(&offer).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"status": models.BidStatusCounterOffered}
		if callerID == bid.TutorID {
			updates["offered_price"] = price
		}
		result := tx.Model(&models.Bid{}).
			Where("id = ? AND status IN ?", bid.ID, []string{models.BidStatusPending, models.BidStatusCounterOffered}).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: bid no longer negotiable", ErrInvalidState)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("CounterOffers", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&bid, "id = ?", bidID).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}
