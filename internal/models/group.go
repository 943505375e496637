package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Group struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedBy     uuid.UUID       `json:"createdBy" gorm:"type:uuid;index;not null"`
	Name          string          `json:"name" gorm:"not null"`
	Description   *string         `json:"description"`
	GoalAmount    decimal.Decimal `json:"goalAmount" gorm:"type:decimal(10,2);not null;default:0"`
	PledgedAmount decimal.Decimal `json:"pledgedAmount" gorm:"type:decimal(10,2);not null;default:0"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:decimal(10,2);not null;default:0"`
	Currency      string          `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`

	Members []GroupMember `json:"members,omitempty" gorm:"foreignKey:GroupID"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Group DTOs
type CreateGroupRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description"`
	GoalAmount  decimal.Decimal `json:"goalAmount"`
	Currency    string          `json:"currency"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Role   string    `json:"role"`
}
