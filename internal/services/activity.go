package services

import (
	"encoding/json"
	"log"

	"github.com/dokoth/harambee-api/internal/database"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// logActivity writes an activity row in the caller's transaction so the
// feed stays consistent with the mutation that produced the event.
// External notifiers consume the feed; nothing is delivered from here.
func logActivity(tx *gorm.DB, userID, groupID uuid.UUID, activityType string, data map[string]interface{}) {
	var payload *string
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			s := string(raw)
			payload = &s
		}
	}

	activity := models.Activity{
		GroupID:      groupID,
		UserID:       userID,
		ActivityType: activityType,
		ActivityData: payload,
	}
	if err := tx.Create(&activity).Error; err != nil {
		log.Printf("failed to log %s activity for group %s: %v", activityType, groupID, err)
	}
}

// GetGroupActivity returns the group's activity feed, newest first.
func GetGroupActivity(groupID uuid.UUID, page, limit int) ([]models.Activity, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	var activities []models.Activity
	err := database.DB.Where("group_id = ?", groupID).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "fetch activity")
	}

	var total int64
	database.DB.Model(&models.Activity{}).Where("group_id = ?", groupID).Count(&total)

	return activities, total, nil
}
