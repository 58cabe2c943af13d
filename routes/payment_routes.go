package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorly/api/handlers"
)

func PaymentRoutes(app *fiber.App, h *handlers.PaymentHandler) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments")
	payments.Get("", h.ListPayments)
	payments.Post("/:paymentId/capture", h.CapturePayment)
	payments.Post("/:paymentId/release", h.ReleasePayment)
}
