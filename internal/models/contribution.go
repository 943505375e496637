package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contribution is one append-only record of money actually received,
// either against a pledge or recorded manually by an admin. Rows are never
// updated or deleted; groups.current_amount is the running total.
type Contribution struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID       uuid.UUID       `json:"groupId" gorm:"type:uuid;index;not null"`
	PledgeID      *uuid.UUID      `json:"pledgeId" gorm:"type:uuid;index"` // nil for manual contributions
	ContributorID *uuid.UUID      `json:"contributorId" gorm:"type:uuid"`  // nil when anonymous
	RecordedBy    uuid.UUID       `json:"recordedBy" gorm:"type:uuid;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency      string          `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (c *Contribution) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ManualContributionRequest records cash/offline money with no backing
// pledge. ContributorID of "anonymous" (or empty) is stored without
// attribution.
type ManualContributionRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	ContributorID string          `json:"contributorId"`
	Notes         *string         `json:"notes"`
}
