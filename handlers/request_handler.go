package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorly/api/models"
	"github.com/tutorly/api/services"
	"gorm.io/gorm"
)

type RequestHandler struct {
	db       *gorm.DB
	requests *services.RequestService
}

func NewRequestHandler(db *gorm.DB, requests *services.RequestService) *RequestHandler {
	return &RequestHandler{db: db, requests: requests}
}

type CreateRequestRequest struct {
	Subject        string    `json:"subject" validate:"required"`
	Topic          string    `json:"topic" validate:"required"`
	Description    string    `json:"description"`
	DurationHours  int       `json:"duration_hours" validate:"required,gt=0"`
	PreferredPrice int64     `json:"preferred_price" validate:"required,gt=0"`
	MaxPrice       int64     `json:"max_price" validate:"required,gtefield=PreferredPrice"`
	SessionDate    time.Time `json:"session_date" validate:"required"`
	Location       string    `json:"location" validate:"required"`
	Urgency        string    `json:"urgency" validate:"omitempty,oneof=low medium high"`
}

func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	studentID, err := callerID(c, "student_id")
	if err != nil {
		return err
	}

	var req CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = "medium"
	}

	request := models.TutoringRequest{
		StudentID:      studentID,
		Subject:        req.Subject,
		Topic:          req.Topic,
		Description:    req.Description,
		DurationHours:  req.DurationHours,
		PreferredPrice: req.PreferredPrice,
		MaxPrice:       req.MaxPrice,
		SessionDate:    req.SessionDate,
		Location:       req.Location,
		Urgency:        urgency,
		Status:         models.RequestStatusActive,
	}
	if err := h.db.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	query := h.db.Model(&models.TutoringRequest{}).Limit(limit)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("LOWER(subject) LIKE LOWER(?)", "%"+subject+"%")
	}
	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var requests []models.TutoringRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(requests)
}

func (h *RequestHandler) GetRequest(c *fiber.Ctx) error {
	requestID, err := parseIDParam(c, "requestId")
	if err != nil {
		return err
	}

	var request models.TutoringRequest
	if err := h.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(request)
}

type UpdateRequestRequest struct {
	Subject        *string    `json:"subject"`
	Topic          *string    `json:"topic"`
	Description    *string    `json:"description"`
	DurationHours  *int       `json:"duration_hours" validate:"omitempty,gt=0"`
	PreferredPrice *int64     `json:"preferred_price" validate:"omitempty,gt=0"`
	MaxPrice       *int64     `json:"max_price" validate:"omitempty,gt=0"`
	SessionDate    *time.Time `json:"session_date"`
	Location       *string    `json:"location"`
	Urgency        *string    `json:"urgency" validate:"omitempty,oneof=low medium high"`
}

// UpdateRequest edits descriptive fields only. Status and the matched tutor
// are deliberately absent: those move through acceptance, cancel and
// complete, never through a field write.
func (h *RequestHandler) UpdateRequest(c *fiber.Ctx) error {
	requestID, err := parseIDParam(c, "requestId")
	if err != nil {
		return err
	}
	studentID, err := callerID(c, "student_id")
	if err != nil {
		return err
	}

	var req UpdateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var request models.TutoringRequest
	if err := h.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if request.StudentID != studentID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this request"})
	}

	updates := map[string]interface{}{}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.Topic != nil {
		updates["topic"] = *req.Topic
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DurationHours != nil {
		updates["duration_hours"] = *req.DurationHours
	}
	if req.PreferredPrice != nil {
		updates["preferred_price"] = *req.PreferredPrice
	}
	if req.MaxPrice != nil {
		updates["max_price"] = *req.MaxPrice
	}
	if req.SessionDate != nil {
		updates["session_date"] = *req.SessionDate
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Urgency != nil {
		updates["urgency"] = *req.Urgency
	}

	if len(updates) > 0 {
		if err := h.db.Model(&request).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
	}
	return c.JSON(request)
}

func (h *RequestHandler) CancelRequest(c *fiber.Ctx) error {
	requestID, err := parseIDParam(c, "requestId")
	if err != nil {
		return err
	}
	studentID, err := callerID(c, "student_id")
	if err != nil {
		return err
	}

	request, err := h.requests.Cancel(requestID, studentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(request)
}

func (h *RequestHandler) CompleteRequest(c *fiber.Ctx) error {
	requestID, err := parseIDParam(c, "requestId")
	if err != nil {
		return err
	}
	studentID, err := callerID(c, "student_id")
	if err != nil {
		return err
	}

	request, err := h.requests.Complete(requestID, studentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(request)
}
