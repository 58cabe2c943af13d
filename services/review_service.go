package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"gorm.io/gorm"
)

// ReviewService accepts one review per participant of a completed
// session. The reviewee is derived from the request, never caller-supplied.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type SubmitReviewInput struct {
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Rating     int
	Comment    string
}

func (s *ReviewService) SubmitReview(in SubmitReviewInput) (*models.Review, error) {
	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var request models.TutoringRequest
		if err := tx.First(&request, "id = ?", in.RequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: request not found", ErrNotFound)
			}
			return err
		}
		if request.Status != models.RequestStatusCompleted {
			return fmt.Errorf("%w: reviews can only be submitted for completed requests", ErrInvalidState)
		}

		var revieweeID uuid.UUID
		switch {
		case in.ReviewerID == request.StudentID && request.MatchedTutorID != nil:
			revieweeID = *request.MatchedTutorID
		case request.MatchedTutorID != nil && in.ReviewerID == *request.MatchedTutorID:
			revieweeID = request.StudentID
		default:
			return fmt.Errorf("%w: reviewer is not a participant of this request", ErrForbidden)
		}

		review = models.Review{
			RequestID:  in.RequestID,
			ReviewerID: in.ReviewerID,
			RevieweeID: revieweeID,
			Rating:     in.Rating,
			Comment:    in.Comment,
		}
		// The unique (request_id, reviewer_id) index arbitrates repeat
		// submissions.
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: a review for this request has already been submitted", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}
