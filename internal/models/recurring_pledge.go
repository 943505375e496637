package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringPledge is a standing commitment to contribute on a schedule.
// An external job reads due rows and advances NextDueDate; the spawning of
// concrete pledges happens outside this service.
type RecurringPledge struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID     uuid.UUID       `json:"groupId" gorm:"type:uuid;index;not null"`
	UserID      uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency    string          `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Frequency   string          `json:"frequency" gorm:"not null"` // weekly, biweekly, monthly, quarterly
	StartDate   time.Time       `json:"startDate" gorm:"not null"`
	EndDate     *time.Time      `json:"endDate"`
	NextDueDate time.Time       `json:"nextDueDate"`
	IsActive    bool            `json:"isActive" gorm:"default:true"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (rp *RecurringPledge) BeforeCreate(tx *gorm.DB) error {
	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}
	return nil
}

// RecurringPledge DTOs
type CreateRecurringPledgeRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Currency  string          `json:"currency"`
	Frequency string          `json:"frequency" validate:"required"`
	StartDate time.Time       `json:"startDate" validate:"required"`
	EndDate   *time.Time      `json:"endDate"`
	Notes     *string         `json:"notes"`
}

type UpdateRecurringPledgeRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	Frequency *string          `json:"frequency"`
	EndDate   *time.Time       `json:"endDate"`
	Notes     *string          `json:"notes"`
}
