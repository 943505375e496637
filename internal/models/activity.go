package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity types. Each ledger mutation writes its activity in the same
// transaction, so the feed is the event stream external notifiers consume.
const (
	ActivityPledgeMade         = "pledge_made"
	ActivityPledgeCancelled    = "pledge_cancelled"
	ActivityContributionMade   = "contribution_made"
	ActivityManualContribution = "manual_contribution"
	ActivityMilestoneReached   = "milestone_reached"
	ActivityMemberJoined       = "member_joined"
)

type Activity struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID      uuid.UUID      `json:"groupId" gorm:"type:uuid;index;not null"`
	UserID       uuid.UUID      `json:"userId" gorm:"type:uuid;not null"`
	ActivityType string         `json:"activityType" gorm:"not null"`
	ActivityData *string        `json:"activityData"` // JSON payload for the event
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
