package jobs

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"gorm.io/gorm"
)

// RequestExpiryJob cancels active requests whose session date has passed
// without a match, and rejects whatever bids were still open on them.
type RequestExpiryJob struct {
	db *gorm.DB
}

func NewRequestExpiryJob(db *gorm.DB) *RequestExpiryJob {
	return &RequestExpiryJob{db: db}
}

func (j *RequestExpiryJob) Run() {
	log.Println("Running job: ExpireStaleRequests...")

	err := j.db.Transaction(func(tx *gorm.DB) error {
		var staleIDs []uuid.UUID
		if err := tx.Model(&models.TutoringRequest{}).
			Where("status = ? AND session_date < ?", models.RequestStatusActive, time.Now()).
			Pluck("id", &staleIDs).Error; err != nil {
			return err
		}
		if len(staleIDs) == 0 {
			return nil
		}

		if err := tx.Model(&models.TutoringRequest{}).
			Where("id IN ? AND status = ?", staleIDs, models.RequestStatusActive).
			Update("status", models.RequestStatusCancelled).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Bid{}).
			Where("request_id IN ? AND status IN ?", staleIDs,
				[]string{models.BidStatusPending, models.BidStatusCounterOffered}).
			Update("status", models.BidStatusRejected).Error; err != nil {
			return err
		}

		log.Printf("Expired %d stale request(s)", len(staleIDs))
		return nil
	})
	if err != nil {
		log.Printf("Error expiring stale requests: %v", err)
	}
}
