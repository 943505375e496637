package services

import (
	"time"

	"github.com/dokoth/harambee-api/internal/models"
)

// ReminderFrequencies lists the cadences a per-pledge reminder accepts.
var ReminderFrequencies = []string{
	models.FrequencyNone,
	models.FrequencyDaily,
	models.FrequencyWeekly,
	models.FrequencyBiweekly,
	models.FrequencyTriweekly,
	models.FrequencyMonthly,
}

// RecurringFrequencies lists the cadences a standing pledge accepts.
var RecurringFrequencies = []string{
	models.FrequencyWeekly,
	models.FrequencyBiweekly,
	models.FrequencyMonthly,
	models.FrequencyQuarterly,
}

// NextReminderDate computes when a pledge reminder should next fire,
// counting from the given date. Monthly cadence uses calendar months via
// time.AddDate, with Go's normalization policy for short months
// (Jan 31 + 1 month lands in early March). Returns nil for "none" or an
// unknown frequency.
func NextReminderDate(frequency string, from time.Time) *time.Time {
	var next time.Time

	switch frequency {
	case models.FrequencyDaily:
		next = from.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		next = from.AddDate(0, 0, 7)
	case models.FrequencyBiweekly:
		next = from.AddDate(0, 0, 14)
	case models.FrequencyTriweekly:
		next = from.AddDate(0, 0, 21)
	case models.FrequencyMonthly:
		next = from.AddDate(0, 1, 0)
	default:
		return nil
	}

	return &next
}

// NextDueDate computes the next charge date for a recurring pledge.
// Quarterly adds three calendar months; the other cadences match
// NextReminderDate.
func NextDueDate(frequency string, from time.Time) *time.Time {
	if frequency == models.FrequencyQuarterly {
		next := from.AddDate(0, 3, 0)
		return &next
	}
	return NextReminderDate(frequency, from)
}

func validReminderFrequency(frequency string) bool {
	for _, f := range ReminderFrequencies {
		if f == frequency {
			return true
		}
	}
	return false
}

func validRecurringFrequency(frequency string) bool {
	for _, f := range RecurringFrequencies {
		if f == frequency {
			return true
		}
	}
	return false
}
