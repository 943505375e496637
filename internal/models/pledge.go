package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pledge statuses
const (
	PledgeStatusPledged = "pledged"
	PledgeStatusPartial = "partial"
	PledgeStatusPaid    = "paid"
	// A cancelled pledge is deleted outright; the status exists for wire
	// compatibility with clients that filter on it.
	PledgeStatusCancelled = "cancelled"
)

// Reminder frequencies
const (
	FrequencyNone      = "none"
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyBiweekly  = "biweekly"
	FrequencyTriweekly = "triweekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

type Pledge struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID           uuid.UUID       `json:"groupId" gorm:"type:uuid;index;not null"`
	UserID            uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	AmountPaid        decimal.Decimal `json:"amountPaid" gorm:"type:decimal(10,2);not null;default:0"`
	Status            string          `json:"status" gorm:"index;not null;default:'pledged'"` // pledged, partial, paid
	Currency          string          `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	OriginalAmount    decimal.Decimal `json:"originalAmount" gorm:"type:decimal(10,2)"`
	ReminderFrequency string          `json:"reminderFrequency" gorm:"not null;default:'none'"`
	FulfillmentDate   *time.Time      `json:"fulfillmentDate"`
	PaidDate          *time.Time      `json:"paidDate"`
	IsAnonymous       bool            `json:"isAnonymous" gorm:"default:false"`
	RecordedBy        uuid.UUID       `json:"recordedBy" gorm:"type:uuid"`
	Notes             *string         `json:"notes"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Reminder *Reminder `json:"reminder,omitempty" gorm:"foreignKey:PledgeID"`
}

func (p *Pledge) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Outstanding is the portion of the pledge not yet contributed.
func (p *Pledge) Outstanding() decimal.Decimal {
	return p.Amount.Sub(p.AmountPaid)
}

// Pledge DTOs
type CreatePledgeRequest struct {
	Amount            decimal.Decimal  `json:"amount" validate:"required"`
	ReminderFrequency string           `json:"reminderFrequency"`
	IsAnonymous       bool             `json:"isAnonymous"`
	Currency          string           `json:"currency"`
	OriginalAmount    *decimal.Decimal `json:"originalAmount"`
	FulfillmentDate   *time.Time       `json:"fulfillmentDate"`
	Notes             *string          `json:"notes"`
}

type MarkPledgePaidRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}
