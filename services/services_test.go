package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tutorly/api/models"
	"github.com/tutorly/api/testutil"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	return testutil.NewTestDB(t,
		&models.User{},
		&models.TutoringRequest{},
		&models.Bid{},
		&models.CounterOffer{},
		&models.Payment{},
		&models.Review{},
	)
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		FullName: "Test " + role,
		Email:    fmt.Sprintf("%s@example.com", uuid.New()),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedRequest(t *testing.T, db *gorm.DB, studentID uuid.UUID, maxPrice int64) *models.TutoringRequest {
	t.Helper()
	request := &models.TutoringRequest{
		StudentID:      studentID,
		Subject:        "Mathematics",
		Topic:          "Calculus",
		Description:    "Derivatives and integrals",
		DurationHours:  2,
		PreferredPrice: maxPrice * 8 / 10,
		MaxPrice:       maxPrice,
		SessionDate:    time.Now().Add(72 * time.Hour),
		Location:       "online",
		Urgency:        "medium",
		Status:         models.RequestStatusActive,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func seedBid(t *testing.T, db *gorm.DB, requestID, tutorID uuid.UUID, price int64) *models.Bid {
	t.Helper()
	bid := &models.Bid{
		RequestID:         requestID,
		TutorID:           tutorID,
		OfferedPrice:      price,
		Message:           "I can help with this",
		EstimatedDuration: 2,
		Status:            models.BidStatusPending,
	}
	require.NoError(t, db.Create(bid).Error)
	return bid
}

func reloadBid(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Bid {
	t.Helper()
	var bid models.Bid
	require.NoError(t, db.First(&bid, "id = ?", id).Error)
	return &bid
}

func reloadRequest(t *testing.T, db *gorm.DB, id uuid.UUID) *models.TutoringRequest {
	t.Helper()
	var request models.TutoringRequest
	require.NoError(t, db.First(&request, "id = ?", id).Error)
	return &request
}

func walletBalance(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.WalletBalance
}

func paymentCount(t *testing.T, db *gorm.DB, requestID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("request_id = ?", requestID).Count(&count).Error)
	return count
}
