package handlers

import (
	"time"

	"github.com/dokoth/harambee-api/internal/database"
	"github.com/dokoth/harambee-api/internal/middleware"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/dokoth/harambee-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type leaderboardEntry struct {
	UserID           uuid.UUID       `json:"userId"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	TotalContributed decimal.Decimal `json:"totalContributed"`
	PledgeCount      int             `json:"pledgeCount"`
}

// GetGroupAnalytics returns a group's funding stats, leaderboard and goal
// projection (members only).
func GetGroupAnalytics(c *fiber.Ctx) error {
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

	var memberCount, activePledges, fulfilledPledges int64
	database.DB.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&memberCount)
	database.DB.Model(&models.Pledge{}).
		Where("group_id = ? AND status IN ?", groupID, []string{models.PledgeStatusPledged, models.PledgeStatusPartial}).
		Count(&activePledges)
	database.DB.Model(&models.Pledge{}).
		Where("group_id = ? AND status = ?", groupID, models.PledgeStatusPaid).
		Count(&fulfilledPledges)

	var leaderboard []leaderboardEntry
	database.DB.Model(&models.Contribution{}).
		Select("users.id as user_id, users.first_name, users.last_name, SUM(contributions.amount) as total_contributed, COUNT(contributions.id) as pledge_count").
		Joins("JOIN users ON users.id = contributions.contributor_id").
		Where("contributions.group_id = ?", groupID).
		Group("users.id, users.first_name, users.last_name").
		Order("total_contributed DESC").
		Limit(10).
		Scan(&leaderboard)

	stats := fiber.Map{
		"memberCount":       memberCount,
		"activePledges":     activePledges,
		"fulfilledPledges":  fulfilledPledges,
		"goalAmount":        group.GoalAmount,
		"pledgedAmount":     group.PledgedAmount,
		"contributedAmount": group.CurrentAmount,
	}
	if group.GoalAmount.IsPositive() {
		hundred := decimal.NewFromInt(100)
		stats["pledgedProgress"] = group.PledgedAmount.Div(group.GoalAmount).Mul(hundred).Round(1)
		stats["contributedProgress"] = group.CurrentAmount.Div(group.GoalAmount).Mul(hundred).Round(1)
	}

	return c.JSON(fiber.Map{
		"stats":       stats,
		"leaderboard": leaderboard,
		"projection":  services.ProjectCompletion(group.GoalAmount, group.CurrentAmount),
	})
}

// CreateAnalyticsSnapshot captures today's totals. Snapshotting the same
// day twice overwrites the earlier row.
func CreateAnalyticsSnapshot(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	if !isGroupAdmin(groupID, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only group admins can create snapshots",
		})
	}

	var group models.Group
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	var memberCount, activePledges int64
	database.DB.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&memberCount)
	database.DB.Model(&models.Pledge{}).
		Where("group_id = ? AND status IN ?", groupID, []string{models.PledgeStatusPledged, models.PledgeStatusPartial}).
		Count(&activePledges)

	snapshot := models.AnalyticsSnapshot{
		GroupID:          groupID,
		SnapshotDate:     time.Now().Format("2006-01-02"),
		TotalPledged:     group.PledgedAmount,
		TotalContributed: group.CurrentAmount,
		MemberCount:      int(memberCount),
		ActivePledges:    int(activePledges),
	}

	err = database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "group_id"}, {Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_pledged", "total_contributed", "member_count", "active_pledges",
		}),
	}).Create(&snapshot).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create snapshot",
		})
	}

	return c.JSON(fiber.Map{"message": "Analytics snapshot created successfully"})
}
