package services

import (
	"log"

	"github.com/dokoth/harambee-api/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

// CheckMilestones records every 25/50/75/100% threshold the group's
// relevant total has crossed, inside the caller's transaction. The unique
// index on (group, type, percent) makes re-checking idempotent: only
// genuinely new crossings insert a row and emit an activity. Milestones
// are never removed when a total later drops — they record "ever
// reached", not "currently holding".
//
// Returns the percents newly crossed by this call.
func CheckMilestones(tx *gorm.DB, groupID uuid.UUID, milestoneType string) ([]int, error) {
	var group models.Group
	if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, errors.Wrap(err, "load group for milestone check")
	}

	// A zero goal can never be crossed; skip rather than divide by zero.
	if group.GoalAmount.IsZero() {
		return nil, nil
	}

	total := group.CurrentAmount
	if milestoneType == models.MilestonePledged {
		total = group.PledgedAmount
	}
	percentage := total.Div(group.GoalAmount).Mul(oneHundred)

	var crossed []int
	for _, percent := range models.MilestonePercents {
		if percentage.LessThan(decimal.NewFromInt(int64(percent))) {
			continue
		}

		var existing models.MilestoneReached
		err := tx.Where("group_id = ? AND milestone_type = ? AND milestone_percent = ?",
			groupID, milestoneType, percent).First(&existing).Error
		if err == nil {
			continue // already recorded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return crossed, errors.Wrap(err, "look up milestone")
		}

		milestone := models.MilestoneReached{
			GroupID:          groupID,
			MilestoneType:    milestoneType,
			MilestonePercent: percent,
		}
		if err := tx.Create(&milestone).Error; err != nil {
			// A concurrent transaction crossing the same threshold hits
			// the unique index; the milestone exists either way.
			continue
		}
		crossed = append(crossed, percent)

		logActivity(tx, group.CreatedBy, groupID, models.ActivityMilestoneReached, map[string]interface{}{
			"milestone": percent,
			"type":      milestoneType,
		})
	}

	return crossed, nil
}

// checkMilestonesBestEffort runs the detector and swallows failures.
// A milestone is a side notification, not a correctness-critical write;
// its failure must never roll back the pledge or contribution that
// triggered it.
func checkMilestonesBestEffort(tx *gorm.DB, groupID uuid.UUID, milestoneType string) {
	if _, err := CheckMilestones(tx, groupID, milestoneType); err != nil {
		log.Printf("milestone check failed for group %s: %v", groupID, err)
	}
}
