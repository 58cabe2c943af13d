package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorly/api/handlers"
)

func UserRoutes(app *fiber.App, h *handlers.UserHandler) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("", h.CreateUser)
	users.Get("/:userId", h.GetUser)
	users.Put("/:userId", h.UpdateUser)
	users.Post("/:userId/wallet/credit", h.CreditWallet)
}
