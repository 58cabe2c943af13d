package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tutorly/api/models"
)

func TestCreateReviewStatusCodes(t *testing.T) {
	app, db := newTestApp(t)
	student, tutor, request := seedMarketplace(t, db)

	stranger := models.User{FullName: "Stranger", Email: uuid.NewString() + "@example.com"}
	require.NoError(t, db.Create(&stranger).Error)

	reviewBody := func(requestID, reviewerID uuid.UUID) map[string]interface{} {
		return map[string]interface{}{
			"request_id":  requestID.String(),
			"reviewer_id": reviewerID.String(),
			"rating":      5,
			"comment":     "Great session",
		}
	}

	// Unknown request.
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/reviews", reviewBody(uuid.New(), student.ID))
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Still active, not reviewable yet.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/reviews", reviewBody(request.ID, student.ID))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	err := db.Model(&models.TutoringRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":           models.RequestStatusCompleted,
			"matched_tutor_id": tutor.ID,
		}).Error
	require.NoError(t, err)

	// Outsiders cannot review.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/reviews", reviewBody(request.ID, stranger.ID))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, created := doJSON(t, app, fiber.MethodPost, "/api/v1/reviews", reviewBody(request.ID, student.ID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, tutor.ID.String(), created["reviewee_id"])

	// One review per participant per request.
	resp, errBody := doJSON(t, app, fiber.MethodPost, "/api/v1/reviews", reviewBody(request.ID, student.ID))
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.Contains(t, errBody["error"], "already been submitted")
}
