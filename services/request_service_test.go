package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tutorly/api/models"
)

func TestCancelActiveRequestRejectsOpenBids(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	student := seedUser(t, db, models.RoleStudent)
	tutor := seedUser(t, db, models.RoleTutor)
	request := seedRequest(t, db, student.ID, 150000)
	bid := seedBid(t, db, request.ID, tutor.ID, 120000)

	cancelled, err := svc.Cancel(request.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusCancelled, cancelled.Status)
	require.Equal(t, models.BidStatusRejected, reloadBid(t, db, bid.ID).Status)
}

func TestCancelMatchedRequestFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)
	acceptance := NewAcceptanceService(db)

	student := seedUser(t, db, models.RoleStudent)
	tutor := seedUser(t, db, models.RoleTutor)
	request := seedRequest(t, db, student.ID, 150000)
	bid := seedBid(t, db, request.ID, tutor.ID, 120000)

	_, err := acceptance.AcceptBid(bid.ID, student.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(request.ID, student.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	require.Equal(t, models.RequestStatusMatched, reloadRequest(t, db, request.ID).Status)
}

func TestCancelForbiddenForNonOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	student := seedUser(t, db, models.RoleStudent)
	stranger := seedUser(t, db, models.RoleStudent)
	request := seedRequest(t, db, student.ID, 150000)

	_, err := svc.Cancel(request.ID, stranger.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCompleteMatchedRequestKeepsTutor(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)
	acceptance := NewAcceptanceService(db)

	student := seedUser(t, db, models.RoleStudent)
	tutor := seedUser(t, db, models.RoleTutor)
	request := seedRequest(t, db, student.ID, 150000)
	bid := seedBid(t, db, request.ID, tutor.ID, 120000)

	_, err := acceptance.AcceptBid(bid.ID, student.ID)
	require.NoError(t, err)

	completed, err := svc.Complete(request.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusCompleted, completed.Status)

	reloaded := reloadRequest(t, db, request.ID)
	require.NotNil(t, reloaded.MatchedTutorID)
	require.Equal(t, tutor.ID, *reloaded.MatchedTutorID)
}

func TestCompleteActiveRequestFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	student := seedUser(t, db, models.RoleStudent)
	request := seedRequest(t, db, student.ID, 150000)

	_, err := svc.Complete(request.ID, student.ID)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelRequestNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	student := seedUser(t, db, models.RoleStudent)
	_, err := svc.Cancel(uuid.New(), student.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
