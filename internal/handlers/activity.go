package handlers

import (
	"strconv"

	"github.com/dokoth/harambee-api/internal/middleware"
	"github.com/dokoth/harambee-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetGroupActivity returns the paginated activity feed for a group.
// External notifiers poll this to react to pledge, contribution and
// milestone events.
func GetGroupActivity(c *fiber.Ctx) error {
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

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	activities, total, err := services.GetGroupActivity(groupID, page, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"activities": activities,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}
