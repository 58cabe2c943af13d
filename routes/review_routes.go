package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorly/api/handlers"
)

func ReviewRoutes(app *fiber.App, h *handlers.ReviewHandler) {
	api := app.Group("/api/v1")

	reviews := api.Group("/reviews")
	reviews.Post("", h.CreateReview)
	reviews.Get("", h.ListReviews)
}
