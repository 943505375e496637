package handlers

import (
	"github.com/dokoth/harambee-api/internal/middleware"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/dokoth/harambee-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetRecurringPledges lists the caller's standing pledges in a group.
func GetRecurringPledges(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	pledges, err := services.GetRecurringPledges(groupID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"pledges": pledges})
}

// CreateRecurringPledge registers a standing commitment.
func CreateRecurringPledge(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var req models.CreateRecurringPledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.StartDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Start date is required",
		})
	}

	rp, err := services.CreateRecurringPledge(groupID, userID, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(rp)
}

// UpdateRecurringPledge applies partial updates to the caller's standing
// pledge.
func UpdateRecurringPledge(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, pledgeID, ok := parseRecurringParams(c)
	if !ok {
		return nil
	}

	var req models.UpdateRecurringPledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	rp, err := services.UpdateRecurringPledge(groupID, pledgeID, userID, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(rp)
}

// PauseRecurringPledge deactivates without cancelling.
func PauseRecurringPledge(c *fiber.Ctx) error {
	return toggleRecurring(c, services.PauseRecurringPledge)
}

// ResumeRecurringPledge reactivates a paused pledge.
func ResumeRecurringPledge(c *fiber.Ctx) error {
	return toggleRecurring(c, services.ResumeRecurringPledge)
}

// CancelRecurringPledge deactivates the standing commitment.
func CancelRecurringPledge(c *fiber.Ctx) error {
	return toggleRecurring(c, services.CancelRecurringPledge)
}

func toggleRecurring(c *fiber.Ctx, op func(groupID, pledgeID, userID uuid.UUID) (*models.RecurringPledge, error)) error {
	userID := middleware.GetUserID(c)
	groupID, pledgeID, ok := parseRecurringParams(c)
	if !ok {
		return nil
	}

	rp, err := op(groupID, pledgeID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(rp)
}

func parseRecurringParams(c *fiber.Ctx) (groupID, pledgeID uuid.UUID, ok bool) {
	var err error
	groupID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
		return uuid.Nil, uuid.Nil, false
	}
	pledgeID, err = uuid.Parse(c.Params("pledgeId"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid pledge ID",
		})
		return uuid.Nil, uuid.Nil, false
	}
	return groupID, pledgeID, true
}
