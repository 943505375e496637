package handlers

import (
	"github.com/dokoth/harambee-api/internal/middleware"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/dokoth/harambee-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreatePledge records a new pledge for the authenticated member.
func CreatePledge(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var req models.CreatePledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	pledge, err := services.CreatePledge(groupID, userID, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(pledge)
}

// CancelPledge removes the caller's own pledge.
func CancelPledge(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}
	pledgeID, err := uuid.Parse(c.Params("pledgeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid pledge ID",
		})
	}

	if err := services.CancelPledge(groupID, pledgeID, userID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Pledge cancelled successfully"})
}

// GetGroupPledges lists a group's pledges, newest first (members only).
func GetGroupPledges(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	if !isGroupMember(groupID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	pledges, err := services.GetGroupPledges(groupID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"pledges": pledges})
}

// MarkPledgeAsPaid records a contribution against a pledge (admin only).
// Omitting the amount pays the full outstanding balance.
func MarkPledgeAsPaid(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}
	pledgeID, err := uuid.Parse(c.Params("pledgeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid pledge ID",
		})
	}

	var req models.MarkPledgePaidRequest
	c.BodyParser(&req) // optional body

	totals, err := services.MarkPledgeAsPaid(groupID, pledgeID, userID, req.Amount)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Contribution recorded successfully",
		"totals":  totals,
	})
}

// AddManualContribution records offline money with no backing pledge
// (admin only).
func AddManualContribution(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var req models.ManualContributionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	totals, err := services.AddManualContribution(groupID, userID, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Manual contribution recorded successfully",
		"totals":  totals,
	})
}
