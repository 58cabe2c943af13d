package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tutorly/api/models"
	"gorm.io/gorm"
)

func seedPayment(t *testing.T, db *gorm.DB, studentID, tutorID uuid.UUID, amount int64) *models.Payment {
	t.Helper()
	commission := amount * CommissionRateBP / 10000
	payment := &models.Payment{
		RequestID:     uuid.New(),
		StudentID:     studentID,
		TutorID:       tutorID,
		Amount:        amount,
		Commission:    commission,
		TutorEarnings: amount - commission,
		Status:        models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func TestCaptureMarksPaymentPaid(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscrowService(db, NewLedgerService(db))

	student := seedUser(t, db, models.RoleStudent)
	tutor := seedUser(t, db, models.RoleTutor)
	payment := seedPayment(t, db, student.ID, tutor.ID, 120000)

	captured, err := svc.Capture(payment.ID)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, captured.Status)
	require.NotNil(t, captured.TransactionID)
	require.True(t, strings.HasPrefix(*captured.TransactionID, "txn_"))
	require.Len(t, *captured.TransactionID, 12)
}

func TestCaptureTwiceFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscrowService(db, NewLedgerService(db))

	student := seedUser(t, db, models.RoleStudent)
	tutor := seedUser(t, db, models.RoleTutor)
	payment := seedPayment(t, db, student.ID, tutor.ID, 120000)

	first, err := svc.Capture(payment.ID)
	require.NoError(t, err)

	_, err = svc.Capture(payment.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	require.ErrorContains(t, err, "already captured")

	// The original transaction id survives the failed repeat.
	var current models.Payment
	require.NoError(t, db.First(&current, "id = ?", payment.ID).Error)
	require.Equal(t, *first.TransactionID, *current.TransactionID)
}

func TestCapturePaymentNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscrowService(db, NewLedgerService(db))

	_, err := svc.Capture(uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReleaseCreditsTutorExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscrowService(db, NewLedgerService(db))

	student := seedUser(t, db, models.RoleStudent)
	tutor := seedUser(t, db, models.RoleTutor)
	payment := seedPayment(t, db, student.ID, tutor.ID, 120000)

	_, err := svc.Capture(payment.ID)
	require.NoError(t, err)

	released, err := svc.Release(payment.ID)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusReleased, released.Status)
	require.Equal(t, int64(102000), walletBalance(t, db, tutor.ID))

	_, err = svc.Release(payment.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	require.ErrorContains(t, err, "payment not captured")
	require.Equal(t, int64(102000), walletBalance(t, db, tutor.ID))
}

func TestReleaseBeforeCaptureFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscrowService(db, NewLedgerService(db))

	student := seedUser(t, db, models.RoleStudent)
	tutor := seedUser(t, db, models.RoleTutor)
	payment := seedPayment(t, db, student.ID, tutor.ID, 120000)

	_, err := svc.Release(payment.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	require.Equal(t, int64(0), walletBalance(t, db, tutor.ID))
	var current models.Payment
	require.NoError(t, db.First(&current, "id = ?", payment.ID).Error)
	require.Equal(t, models.PaymentStatusPending, current.Status)
}

func TestReleasePaymentNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewEscrowService(db, NewLedgerService(db))

	_, err := svc.Release(uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

// Full lifecycle from the student's acceptance to the tutor's payout.
func TestEscrowEndToEnd(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	acceptance := NewAcceptanceService(db)
	escrow := NewEscrowService(db, ledger)

	student := seedUser(t, db, models.RoleStudent)
	tutor1 := seedUser(t, db, models.RoleTutor)
	tutor2 := seedUser(t, db, models.RoleTutor)
	request := seedRequest(t, db, student.ID, 150000)
	bidA := seedBid(t, db, request.ID, tutor1.ID, 120000)
	seedBid(t, db, request.ID, tutor2.ID, 100000)

	payment, err := acceptance.AcceptBid(bidA.ID, student.ID)
	require.NoError(t, err)

	captured, err := escrow.Capture(payment.ID)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, captured.Status)

	released, err := escrow.Release(payment.ID)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusReleased, released.Status)
	require.Equal(t, int64(102000), walletBalance(t, db, tutor1.ID))
	require.Equal(t, int64(0), walletBalance(t, db, tutor2.ID))
}
