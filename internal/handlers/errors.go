package handlers

import (
	"log"

	"github.com/dokoth/harambee-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// serviceError maps the services failure taxonomy to HTTP statuses.
// Unrecognized errors are internal: the transaction has been rolled back
// and the caller gets a generic message.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrAmountTooLarge),
		errors.Is(err, services.ErrInvalidFrequency),
		errors.Is(err, services.ErrInvalidContributor):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrNotAdmin),
		errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrPledgeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		log.Printf("internal error: %+v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
