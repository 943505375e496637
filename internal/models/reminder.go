package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder statuses
const (
	ReminderStatusActive    = "active"
	ReminderStatusInactive  = "inactive"
	ReminderStatusCompleted = "completed"
)

// Reminder is the scheduled nudge for a single pledge. It is owned by the
// pledge: created or updated when the pledge's reminder frequency changes,
// deleted when the pledge is cancelled, completed when the pledge is paid.
type Reminder struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	PledgeID         uuid.UUID  `json:"pledgeId" gorm:"type:uuid;uniqueIndex;not null"`
	GroupID          uuid.UUID  `json:"groupId" gorm:"type:uuid;index;not null"`
	UserID           uuid.UUID  `json:"userId" gorm:"type:uuid;index;not null"`
	ReminderType     string     `json:"reminderType" gorm:"not null"`
	NextReminderDate *time.Time `json:"nextReminderDate"`
	Status           string     `json:"status" gorm:"not null;default:'active'"` // active, inactive, completed
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
