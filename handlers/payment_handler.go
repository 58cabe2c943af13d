package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorly/api/models"
	"github.com/tutorly/api/services"
	"github.com/tutorly/api/websocket"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	db     *gorm.DB
	escrow *services.EscrowService
}

func NewPaymentHandler(db *gorm.DB, escrow *services.EscrowService) *PaymentHandler {
	return &PaymentHandler{db: db, escrow: escrow}
}

func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	query := h.db.Model(&models.Payment{}).Limit(limit)

	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if tutorID := c.Query("tutor_id"); tutorID != "" {
		query = query.Where("tutor_id = ?", tutorID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(payments)
}

// CapturePayment simulates securing the student's funds. The gateway is a
// stub; the pending-only guard is not.
func (h *PaymentHandler) CapturePayment(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c, "paymentId")
	if err != nil {
		return err
	}

	payment, err := h.escrow.Capture(paymentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Payment processed successfully",
		"payment": payment,
	})
}

func (h *PaymentHandler) ReleasePayment(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c, "paymentId")
	if err != nil {
		return err
	}

	payment, err := h.escrow.Release(paymentID)
	if err != nil {
		return serviceError(c, err)
	}

	websocket.Notify(payment.TutorID, websocket.Event{Type: websocket.EventPaymentReleased, Payload: payment})

	return c.JSON(fiber.Map{
		"message": "Payment released to tutor",
		"payment": payment,
	})
}
