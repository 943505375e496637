package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Milestone kinds: which total crossed the threshold.
const (
	MilestonePledged     = "pledged"
	MilestoneContributed = "contributed"
)

// MilestonePercents are checked in ascending order so one mutation can
// record several crossings at once.
var MilestonePercents = []int{25, 50, 75, 100}

// MilestoneReached records that a group's total crossed a percentage of
// its goal. The unique index makes the insert idempotent: a milestone is
// recorded at most once per (group, type, percent) and never removed,
// even if the total later drops below the threshold.
type MilestoneReached struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID          uuid.UUID `json:"groupId" gorm:"type:uuid;uniqueIndex:idx_group_milestone;not null"`
	MilestoneType    string    `json:"milestoneType" gorm:"uniqueIndex:idx_group_milestone;not null"` // pledged, contributed
	MilestonePercent int       `json:"milestonePercent" gorm:"uniqueIndex:idx_group_milestone;not null"`
	ReachedAt        time.Time `json:"reachedAt"`
}

func (m *MilestoneReached) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.ReachedAt.IsZero() {
		m.ReachedAt = time.Now()
	}
	return nil
}
