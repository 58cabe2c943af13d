package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorly/api/handlers"
)

func RequestRoutes(app *fiber.App, h *handlers.RequestHandler) {
	api := app.Group("/api/v1")

	requests := api.Group("/requests")
	requests.Post("", h.CreateRequest)
	requests.Get("", h.ListRequests)
	requests.Get("/:requestId", h.GetRequest)
	requests.Put("/:requestId", h.UpdateRequest)
	requests.Post("/:requestId/cancel", h.CancelRequest)
	requests.Post("/:requestId/complete", h.CompleteRequest)
}
