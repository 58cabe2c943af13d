package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorly/api/handlers"
)

func BidRoutes(app *fiber.App, h *handlers.BidHandler) {
	api := app.Group("/api/v1")

	bids := api.Group("/bids")
	bids.Post("", h.CreateBid)
	bids.Get("", h.ListBids)
	bids.Post("/:bidId/accept", h.AcceptBid)
	bids.Post("/:bidId/counter-offer", h.CounterOffer)
}
