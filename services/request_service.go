package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"gorm.io/gorm"
)

// RequestService owns the status transitions a student may drive directly.
// Everything else on a request is a plain field edit; the matched transition
// belongs to the AcceptanceService alone.
type RequestService struct {
	db *gorm.DB
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// Cancel withdraws an active request and rejects any bids still open on it.
func (s *RequestService) Cancel(requestID, studentID uuid.UUID) (*models.TutoringRequest, error) {
	var request models.TutoringRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadOwned(tx, &request, requestID, studentID); err != nil {
			return err
		}

		result := tx.Model(&models.TutoringRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestStatusActive).
			Update("status", models.RequestStatusCancelled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: only active requests can be cancelled", ErrInvalidState)
		}

		if err := tx.Model(&models.Bid{}).
			Where("request_id = ? AND status IN ?", requestID,
				[]string{models.BidStatusPending, models.BidStatusCounterOffered}).
			Update("status", models.BidStatusRejected).Error; err != nil {
			return err
		}

		request.Status = models.RequestStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Complete marks a matched session as held. The matched tutor reference is
// kept, so the status invariant holds across the transition.
func (s *RequestService) Complete(requestID, studentID uuid.UUID) (*models.TutoringRequest, error) {
	var request models.TutoringRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadOwned(tx, &request, requestID, studentID); err != nil {
			return err
		}

		result := tx.Model(&models.TutoringRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestStatusMatched).
			Update("status", models.RequestStatusCompleted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: only matched requests can be completed", ErrInvalidState)
		}

		request.Status = models.RequestStatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *RequestService) loadOwned(tx *gorm.DB, request *models.TutoringRequest, requestID, studentID uuid.UUID) error {
	if err := tx.First(request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: request not found", ErrNotFound)
		}
		return err
	}
	if request.StudentID != studentID {
		return fmt.Errorf("%w: only the request owner can do this", ErrForbidden)
	}
	return nil
}
