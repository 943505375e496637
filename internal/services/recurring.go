package services

import (
	"time"

	"github.com/dokoth/harambee-api/internal/database"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateRecurringPledge registers a standing commitment. The first due
// date is the start date itself; the external job advances it after each
// materialization.
func CreateRecurringPledge(groupID, userID uuid.UUID, req models.CreateRecurringPledgeRequest) (*models.RecurringPledge, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !validRecurringFrequency(req.Frequency) {
		return nil, ErrInvalidFrequency
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	var rp models.RecurringPledge
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireMember(tx, groupID, userID); err != nil {
			return err
		}

		rp = models.RecurringPledge{
			GroupID:     groupID,
			UserID:      userID,
			Amount:      req.Amount,
			Currency:    currency,
			Frequency:   req.Frequency,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			NextDueDate: req.StartDate,
			IsActive:    true,
			Notes:       req.Notes,
		}
		return errors.Wrap(tx.Create(&rp).Error, "insert recurring pledge")
	})
	if err != nil {
		return nil, err
	}

	return &rp, nil
}

// UpdateRecurringPledge applies partial updates, owner only. Nil fields
// keep their current value; EndDate is always overwritten so it can be
// cleared.
func UpdateRecurringPledge(groupID, pledgeID, userID uuid.UUID, req models.UpdateRecurringPledgeRequest) (*models.RecurringPledge, error) {
	if req.Frequency != nil && !validRecurringFrequency(*req.Frequency) {
		return nil, ErrInvalidFrequency
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	rp, err := findOwnedRecurringPledge(groupID, pledgeID, userID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		rp.Amount = *req.Amount
	}
	if req.Frequency != nil {
		rp.Frequency = *req.Frequency
	}
	rp.EndDate = req.EndDate
	if req.Notes != nil {
		rp.Notes = req.Notes
	}

	if err := database.DB.Save(rp).Error; err != nil {
		return nil, errors.Wrap(err, "update recurring pledge")
	}
	return rp, nil
}

// PauseRecurringPledge stops a standing commitment without losing it.
func PauseRecurringPledge(groupID, pledgeID, userID uuid.UUID) (*models.RecurringPledge, error) {
	return setRecurringActive(groupID, pledgeID, userID, false)
}

// ResumeRecurringPledge reactivates a paused commitment.
func ResumeRecurringPledge(groupID, pledgeID, userID uuid.UUID) (*models.RecurringPledge, error) {
	return setRecurringActive(groupID, pledgeID, userID, true)
}

// CancelRecurringPledge deactivates the commitment. The row is kept so
// past materializations keep their reference.
func CancelRecurringPledge(groupID, pledgeID, userID uuid.UUID) (*models.RecurringPledge, error) {
	return setRecurringActive(groupID, pledgeID, userID, false)
}

// AdvanceRecurringPledge moves the due date forward one period. The
// external scheduler calls this after materializing a due pledge. When
// the new due date falls past the end date the pledge deactivates.
func AdvanceRecurringPledge(rp *models.RecurringPledge) error {
	next := NextDueDate(rp.Frequency, rp.NextDueDate)
	if next == nil {
		return ErrInvalidFrequency
	}

	rp.NextDueDate = *next
	if rp.EndDate != nil && rp.NextDueDate.After(*rp.EndDate) {
		rp.IsActive = false
	}

	return errors.Wrap(database.DB.Save(rp).Error, "advance recurring pledge")
}

// GetRecurringPledges lists a user's standing commitments in a group,
// newest first.
func GetRecurringPledges(groupID, userID uuid.UUID) ([]models.RecurringPledge, error) {
	var pledges []models.RecurringPledge
	err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		Order("created_at DESC").
		Find(&pledges).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch recurring pledges")
	}
	return pledges, nil
}

// GetDueRecurringPledges returns every active commitment due on or before
// the given time, for the external materialization job.
func GetDueRecurringPledges(asOf time.Time) ([]models.RecurringPledge, error) {
	var pledges []models.RecurringPledge
	err := database.DB.Where("is_active = ? AND next_due_date <= ?", true, asOf).
		Find(&pledges).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch due recurring pledges")
	}
	return pledges, nil
}

func setRecurringActive(groupID, pledgeID, userID uuid.UUID, active bool) (*models.RecurringPledge, error) {
	rp, err := findOwnedRecurringPledge(groupID, pledgeID, userID)
	if err != nil {
		return nil, err
	}

	rp.IsActive = active
	if err := database.DB.Save(rp).Error; err != nil {
		return nil, errors.Wrap(err, "update recurring pledge")
	}
	return rp, nil
}

func findOwnedRecurringPledge(groupID, pledgeID, userID uuid.UUID) (*models.RecurringPledge, error) {
	var rp models.RecurringPledge
	err := database.DB.Where("id = ? AND group_id = ? AND user_id = ?", pledgeID, groupID, userID).
		First(&rp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPledgeNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load recurring pledge")
	}
	return &rp, nil
}
