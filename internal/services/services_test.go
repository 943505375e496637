package services

import (
	"path/filepath"
	"testing"

	"github.com/dokoth/harambee-api/internal/database"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-level database handle at a fresh sqlite
// file for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.DB = db
	require.NoError(t, database.Migrate())
}

func createTestUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x"}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestGroup(t *testing.T, admin models.User, goal decimal.Decimal) models.Group {
	t.Helper()
	group := models.Group{
		CreatedBy:  admin.ID,
		Name:       "Test Fund",
		GoalAmount: goal,
		Currency:   "USD",
	}
	require.NoError(t, database.DB.Create(&group).Error)
	addTestMember(t, group.ID, admin.ID, models.RoleAdmin)
	return group
}

func addTestMember(t *testing.T, groupID, userID uuid.UUID, role string) {
	t.Helper()
	member := models.GroupMember{GroupID: groupID, UserID: userID, Role: role}
	require.NoError(t, database.DB.Create(&member).Error)
}

func reloadGroup(t *testing.T, groupID uuid.UUID) models.Group {
	t.Helper()
	var group models.Group
	require.NoError(t, database.DB.First(&group, "id = ?", groupID).Error)
	return group
}

func countMilestones(t *testing.T, groupID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.MilestoneReached{}).
		Where("group_id = ?", groupID).Count(&count).Error)
	return count
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
