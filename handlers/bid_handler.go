package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tutorly/api/models"
	"github.com/tutorly/api/services"
	"github.com/tutorly/api/websocket"
	"gorm.io/gorm"
)

type BidHandler struct {
	db         *gorm.DB
	bids       *services.BidService
	acceptance *services.AcceptanceService
}

func NewBidHandler(db *gorm.DB, bids *services.BidService, acceptance *services.AcceptanceService) *BidHandler {
	return &BidHandler{db: db, bids: bids, acceptance: acceptance}
}

type CreateBidRequest struct {
	RequestID         string `json:"request_id" validate:"required,uuid"`
	OfferedPrice      int64  `json:"offered_price" validate:"required,gt=0"`
	Message           string `json:"message"`
	EstimatedDuration int    `json:"estimated_duration" validate:"required,gt=0"`
}

func (h *BidHandler) CreateBid(c *fiber.Ctx) error {
	tutorID, err := callerID(c, "tutor_id")
	if err != nil {
		return err
	}

	var req CreateBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	requestID, _ := uuid.Parse(req.RequestID)

	bid, err := h.bids.SubmitBid(services.SubmitBidInput{
		RequestID:         requestID,
		TutorID:           tutorID,
		OfferedPrice:      req.OfferedPrice,
		Message:           req.Message,
		EstimatedDuration: req.EstimatedDuration,
	})
	if err != nil {
		return serviceError(c, err)
	}

	var request models.TutoringRequest
	if err := h.db.First(&request, "id = ?", bid.RequestID).Error; err == nil {
		websocket.Notify(request.StudentID, websocket.Event{Type: websocket.EventBidReceived, Payload: bid})
	}

	return c.Status(fiber.StatusCreated).JSON(bid)
}

func (h *BidHandler) ListBids(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	query := h.db.Model(&models.Bid{}).Limit(limit)

	if requestID := c.Query("request_id"); requestID != "" {
		query = query.Where("request_id = ?", requestID)
	}
	if tutorID := c.Query("tutor_id"); tutorID != "" {
		query = query.Where("tutor_id = ?", tutorID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bids []models.Bid
	if err := query.Preload("CounterOffers", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Order("created_at DESC").Find(&bids).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(bids)
}

func (h *BidHandler) AcceptBid(c *fiber.Ctx) error {
	bidID, err := parseIDParam(c, "bidId")
	if err != nil {
		return err
	}
	studentID, err := callerID(c, "student_id")
	if err != nil {
		return err
	}

	payment, err := h.acceptance.AcceptBid(bidID, studentID)
	if err != nil {
		return serviceError(c, err)
	}

	websocket.Notify(payment.TutorID, websocket.Event{Type: websocket.EventBidAccepted, Payload: payment})
	go h.notifyRejectedBidders(payment.RequestID, bidID)

	return c.JSON(fiber.Map{
		"message":    "Bid accepted successfully",
		"payment_id": payment.ID,
	})
}

func (h *BidHandler) notifyRejectedBidders(requestID, winningBidID uuid.UUID) {
	var rivals []models.Bid
	if err := h.db.
		Where("request_id = ? AND id <> ? AND status = ?", requestID, winningBidID, models.BidStatusRejected).
		Find(&rivals).Error; err != nil {
		return
	}
	for _, rival := range rivals {
		websocket.Notify(rival.TutorID, websocket.Event{Type: websocket.EventBidRejected, Payload: rival})
	}
}

type CounterOfferRequest struct {
	Price   int64  `json:"price" validate:"required,gt=0"`
	Message string `json:"message"`
}

func (h *BidHandler) CounterOffer(c *fiber.Ctx) error {
	bidID, err := parseIDParam(c, "bidId")
	if err != nil {
		return err
	}
	caller, err := callerID(c, "caller_id")
	if err != nil {
		return err
	}

	var req CounterOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bid, err := h.bids.CounterOffer(bidID, caller, req.Price, req.Message)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bid)
}
