package handlers

import (
	"github.com/dokoth/harambee-api/internal/database"
	"github.com/dokoth/harambee-api/internal/middleware"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateGroup creates a fundraising group; the creator becomes its first
// admin member.
func CreateGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Group name is required",
		})
	}
	if req.GoalAmount.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Goal amount cannot be negative",
		})
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	group := models.Group{
		CreatedBy:   userID,
		Name:        req.Name,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Currency:    currency,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		member := models.GroupMember{
			GroupID: group.ID,
			UserID:  userID,
			Role:    models.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create group",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetGroup returns a group with its current totals (members only).
func GetGroup(c *fiber.Ctx) error {
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

	var group models.Group
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	return c.JSON(group)
}

// GetMembers lists a group's members (members only).
func GetMembers(c *fiber.Ctx) error {
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

	var members []models.GroupMember
	database.DB.Where("group_id = ?", groupID).
		Preload("User").
		Order("joined_at ASC").
		Find(&members)

	return c.JSON(members)
}

// AddMember adds a user to the group (admin only).
func AddMember(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	if !isGroupAdmin(groupID, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only group admins can add members",
		})
	}

	var req models.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var existing models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", groupID, req.UserID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User is already a member",
		})
	}

	role := req.Role
	if role != models.RoleAdmin {
		role = models.RoleMember
	}

	member := models.GroupMember{
		GroupID: groupID,
		UserID:  req.UserID,
		Role:    role,
	}
	if err := database.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add member",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

func isGroupMember(groupID, userID uuid.UUID) bool {
	var member models.GroupMember
	return database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error == nil
}

func isGroupAdmin(groupID, userID uuid.UUID) bool {
	var member models.GroupMember
	err := database.DB.Where("group_id = ? AND user_id = ? AND role = ?",
		groupID, userID, models.RoleAdmin).First(&member).Error
	return err == nil
}
