package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"github.com/tutorly/api/services"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	db      *gorm.DB
	reviews *services.ReviewService
}

func NewReviewHandler(db *gorm.DB, reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{db: db, reviews: reviews}
}

type CreateReviewRequest struct {
	RequestID  string `json:"request_id" validate:"required,uuid"`
	ReviewerID string `json:"reviewer_id" validate:"required,uuid"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	requestID, _ := uuid.Parse(req.RequestID)
	reviewerID, _ := uuid.Parse(req.ReviewerID)

	review, err := h.reviews.SubmitReview(services.SubmitReviewInput{
		RequestID:  requestID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	query := h.db.Model(&models.Review{}).Limit(limit)

	if revieweeID := c.Query("reviewee_id"); revieweeID != "" {
		query = query.Where("reviewee_id = ?", revieweeID)
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(reviews)
}
