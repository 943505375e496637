package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsSnapshot captures a group's totals for one calendar day.
// Re-snapshotting the same day overwrites the row (upsert on
// group_id + snapshot_date).
type AnalyticsSnapshot struct {
	ID               uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID          uuid.UUID       `json:"groupId" gorm:"type:uuid;uniqueIndex:idx_group_snapshot_date;not null"`
	SnapshotDate     string          `json:"snapshotDate" gorm:"type:varchar(10);uniqueIndex:idx_group_snapshot_date;not null"` // YYYY-MM-DD
	TotalPledged     decimal.Decimal `json:"totalPledged" gorm:"type:decimal(10,2);not null;default:0"`
	TotalContributed decimal.Decimal `json:"totalContributed" gorm:"type:decimal(10,2);not null;default:0"`
	MemberCount      int             `json:"memberCount"`
	ActivePledges    int             `json:"activePledges"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func (s *AnalyticsSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
