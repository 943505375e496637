package services

import (
	"time"

	"github.com/dokoth/harambee-api/internal/database"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnonymousContributor is the sentinel a client sends when a manual
// contribution should be recorded without attribution.
const AnonymousContributor = "anonymous"

// GroupTotals is returned by contribution operations so callers see the
// ledger state the mutation produced.
type GroupTotals struct {
	GoalAmount    decimal.Decimal `json:"goalAmount"`
	PledgedAmount decimal.Decimal `json:"pledgedAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// CreatePledge records a member's commitment. The membership check, the
// insert, the aggregate recompute, the reminder upsert and the milestone
// check all run in one transaction so concurrent writers against the same
// group serialize on the database.
func CreatePledge(groupID, userID uuid.UUID, req models.CreatePledgeRequest) (*models.Pledge, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	frequency := req.ReminderFrequency
	if frequency == "" {
		frequency = models.FrequencyNone
	}
	if !validReminderFrequency(frequency) {
		return nil, ErrInvalidFrequency
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	originalAmount := req.Amount
	if req.OriginalAmount != nil {
		originalAmount = *req.OriginalAmount
	}

	var pledge models.Pledge
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Membership is checked inside the transaction to avoid racing a
		// concurrent removal.
		if err := requireMember(tx, groupID, userID); err != nil {
			return err
		}

		pledge = models.Pledge{
			GroupID:           groupID,
			UserID:            userID,
			Amount:            req.Amount,
			AmountPaid:        decimal.Zero,
			Status:            models.PledgeStatusPledged,
			Currency:          currency,
			OriginalAmount:    originalAmount,
			ReminderFrequency: frequency,
			FulfillmentDate:   req.FulfillmentDate,
			IsAnonymous:       req.IsAnonymous,
			RecordedBy:        userID,
			Notes:             req.Notes,
		}
		if err := tx.Create(&pledge).Error; err != nil {
			return errors.Wrap(err, "insert pledge")
		}

		if err := recomputePledgedAmount(tx, groupID); err != nil {
			return err
		}

		if err := upsertReminder(tx, &pledge); err != nil {
			return err
		}

		logActivity(tx, userID, groupID, models.ActivityPledgeMade, map[string]interface{}{
			"amount":      pledge.Amount,
			"isAnonymous": pledge.IsAnonymous,
		})

		checkMilestonesBestEffort(tx, groupID, models.MilestonePledged)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &pledge, nil
}

// CancelPledge hard-deletes a pledge and its reminder. Only the owner may
// cancel. Milestones are not re-checked: a cancellation never un-crosses
// a recorded milestone.
func CancelPledge(groupID, pledgeID, userID uuid.UUID) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var pledge models.Pledge
		err := tx.Where("id = ? AND group_id = ?", pledgeID, groupID).First(&pledge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPledgeNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load pledge")
		}

		if pledge.UserID != userID {
			return ErrNotOwner
		}

		if err := tx.Delete(&models.Pledge{}, "id = ?", pledgeID).Error; err != nil {
			return errors.Wrap(err, "delete pledge")
		}
		if err := tx.Delete(&models.Reminder{}, "pledge_id = ?", pledgeID).Error; err != nil {
			return errors.Wrap(err, "delete reminder")
		}

		if err := recomputePledgedAmount(tx, groupID); err != nil {
			return err
		}

		logActivity(tx, userID, groupID, models.ActivityPledgeCancelled, map[string]interface{}{
			"amount": pledge.Amount,
		})
		return nil
	})
}

// MarkPledgeAsPaid records money received against a pledge. A nil amount
// means the full outstanding balance. Payments smaller than the balance
// leave the pledge partial; the transition to paid happens exactly when
// the running paid total reaches the pledged amount.
func MarkPledgeAsPaid(groupID, pledgeID, adminID uuid.UUID, amount *decimal.Decimal) (*GroupTotals, error) {
	var totals GroupTotals
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, groupID, adminID); err != nil {
			return err
		}

		// Re-read inside the transaction so two concurrent mark-paid
		// calls against the same pledge cannot both apply.
		var pledge models.Pledge
		err := tx.Where("id = ? AND group_id = ?", pledgeID, groupID).First(&pledge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPledgeNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load pledge")
		}

		if pledge.Status == models.PledgeStatusPaid {
			return ErrAlreadyPaid
		}

		outstanding := pledge.Outstanding()
		paying := outstanding
		if amount != nil {
			paying = *amount
		}
		if !paying.IsPositive() {
			return ErrInvalidAmount
		}
		if paying.GreaterThan(outstanding) {
			return ErrAmountTooLarge
		}

		pledge.AmountPaid = pledge.AmountPaid.Add(paying)
		if pledge.AmountPaid.GreaterThanOrEqual(pledge.Amount) {
			pledge.Status = models.PledgeStatusPaid
			now := time.Now()
			pledge.PaidDate = &now
		} else {
			pledge.Status = models.PledgeStatusPartial
		}
		if err := tx.Save(&pledge).Error; err != nil {
			return errors.Wrap(err, "update pledge")
		}

		if pledge.Status == models.PledgeStatusPaid {
			if err := tx.Model(&models.Reminder{}).
				Where("pledge_id = ?", pledgeID).
				Update("status", models.ReminderStatusCompleted).Error; err != nil {
				return errors.Wrap(err, "complete reminder")
			}
		}

		if err := appendContribution(tx, models.Contribution{
			GroupID:       groupID,
			PledgeID:      &pledge.ID,
			ContributorID: &pledge.UserID,
			RecordedBy:    adminID,
			Amount:        paying,
			Currency:      pledge.Currency,
		}); err != nil {
			return err
		}

		logActivity(tx, adminID, groupID, models.ActivityContributionMade, map[string]interface{}{
			"amount":   paying,
			"pledgeId": pledge.ID,
		})

		checkMilestonesBestEffort(tx, groupID, models.MilestoneContributed)

		return loadTotals(tx, groupID, &totals)
	})
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

// AddManualContribution records money received with no backing pledge
// (cash handed over at a meeting, an offline transfer). The contributor
// may be a member, or anonymous.
func AddManualContribution(groupID, adminID uuid.UUID, req models.ManualContributionRequest) (*GroupTotals, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var contributorID *uuid.UUID
	isAnonymous := req.ContributorID == "" || req.ContributorID == AnonymousContributor
	if !isAnonymous {
		parsed, err := uuid.Parse(req.ContributorID)
		if err != nil {
			return nil, ErrInvalidContributor
		}
		contributorID = &parsed
	}

	var totals GroupTotals
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, groupID, adminID); err != nil {
			return err
		}

		var group models.Group
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return errors.Wrap(err, "load group")
		}

		if err := appendContribution(tx, models.Contribution{
			GroupID:       groupID,
			ContributorID: contributorID,
			RecordedBy:    adminID,
			Amount:        req.Amount,
			Currency:      group.Currency,
			Notes:         req.Notes,
		}); err != nil {
			return err
		}

		logActivity(tx, adminID, groupID, models.ActivityManualContribution, map[string]interface{}{
			"amount":      req.Amount,
			"isAnonymous": isAnonymous,
			"notes":       req.Notes,
		})

		checkMilestonesBestEffort(tx, groupID, models.MilestoneContributed)

		return loadTotals(tx, groupID, &totals)
	})
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

// GetGroupPledges lists a group's pledges, newest first.
func GetGroupPledges(groupID uuid.UUID) ([]models.Pledge, error) {
	var pledges []models.Pledge
	err := database.DB.Where("group_id = ?", groupID).
		Preload("User").
		Order("created_at DESC").
		Find(&pledges).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch pledges")
	}
	return pledges, nil
}

// recomputePledgedAmount rebuilds the group's pledged total from the live
// pledge rows. Recomputing instead of incrementing keeps the aggregate
// self-healing under concurrent create/cancel and after partial failures.
func recomputePledgedAmount(tx *gorm.DB, groupID uuid.UUID) error {
	err := tx.Model(&models.Group{}).
		Where("id = ?", groupID).
		Update("pledged_amount", tx.Model(&models.Pledge{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("group_id = ?", groupID)).Error
	return errors.Wrap(err, "recompute pledged amount")
}

// appendContribution writes the append-only contribution row and bumps
// current_amount. The total is incremented, never recomputed: a
// contribution is an irreversible real-world event.
func appendContribution(tx *gorm.DB, contribution models.Contribution) error {
	if err := tx.Create(&contribution).Error; err != nil {
		return errors.Wrap(err, "insert contribution")
	}
	err := tx.Model(&models.Group{}).
		Where("id = ?", contribution.GroupID).
		Update("current_amount", gorm.Expr("current_amount + ?", contribution.Amount)).Error
	return errors.Wrap(err, "increment current amount")
}

// upsertReminder keeps the pledge's reminder in line with its frequency.
// Frequency "none" deactivates an existing reminder instead of deleting
// it, preserving history.
func upsertReminder(tx *gorm.DB, pledge *models.Pledge) error {
	if pledge.ReminderFrequency == models.FrequencyNone {
		err := tx.Model(&models.Reminder{}).
			Where("pledge_id = ?", pledge.ID).
			Update("status", models.ReminderStatusInactive).Error
		return errors.Wrap(err, "deactivate reminder")
	}

	next := NextReminderDate(pledge.ReminderFrequency, time.Now())

	var existing models.Reminder
	err := tx.Where("pledge_id = ?", pledge.ID).First(&existing).Error
	if err == nil {
		existing.ReminderType = pledge.ReminderFrequency
		existing.NextReminderDate = next
		existing.Status = models.ReminderStatusActive
		return errors.Wrap(tx.Save(&existing).Error, "update reminder")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "look up reminder")
	}

	reminder := models.Reminder{
		PledgeID:         pledge.ID,
		GroupID:          pledge.GroupID,
		UserID:           pledge.UserID,
		ReminderType:     pledge.ReminderFrequency,
		NextReminderDate: next,
		Status:           models.ReminderStatusActive,
	}
	return errors.Wrap(tx.Create(&reminder).Error, "insert reminder")
}

func requireMember(tx *gorm.DB, groupID, userID uuid.UUID) error {
	var member models.GroupMember
	err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotMember
	}
	return errors.Wrap(err, "check membership")
}

func requireAdmin(tx *gorm.DB, groupID, userID uuid.UUID) error {
	var member models.GroupMember
	err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && member.Role != models.RoleAdmin) {
		return ErrNotAdmin
	}
	return errors.Wrap(err, "check admin role")
}

func loadTotals(tx *gorm.DB, groupID uuid.UUID, totals *GroupTotals) error {
	var group models.Group
	if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
		return errors.Wrap(err, "load group totals")
	}
	totals.GoalAmount = group.GoalAmount
	totals.PledgedAmount = group.PledgedAmount
	totals.CurrentAmount = group.CurrentAmount
	return nil
}
