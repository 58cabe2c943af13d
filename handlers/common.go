package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tutorly/api/services"
)

var validate = validator.New()

// serviceError translates the services error taxonomy into an HTTP
// response. Anything outside the taxonomy is a server fault.
func serviceError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		code = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidState):
		code = fiber.StatusBadRequest
	default:
		log.Printf("🔥 Unexpected service error: %v", err)
		return c.Status(code).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// callerID parses the caller-supplied identity from a query parameter.
// There is no token auth here: callers identify themselves explicitly.
func callerID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Query(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" must be a valid user id")
	}
	return id, nil
}

func parseIDParam(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+param+" format")
	}
	return id, nil
}
