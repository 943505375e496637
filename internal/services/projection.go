package services

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// projectionWindowDays is the lookback over which the daily average is
// amortized. The average divides the full contributed total by the
// window rather than tracking actual elapsed days; a rough heuristic,
// kept as-is.
const projectionWindowDays = 30

type Projection struct {
	EstimatedCompletionDate  *time.Time      `json:"estimatedCompletionDate"`
	DaysRemaining            *int            `json:"daysRemaining"`
	AverageDailyContribution decimal.Decimal `json:"averageDailyContribution"`
	Message                  string          `json:"message"`
}

// ProjectCompletion estimates when a group reaches its goal from its
// current contributed total.
func ProjectCompletion(goalAmount, currentAmount decimal.Decimal) Projection {
	remaining := goalAmount.Sub(currentAmount)

	if remaining.LessThanOrEqual(decimal.Zero) {
		now := time.Now()
		zero := 0
		return Projection{
			EstimatedCompletionDate:  &now,
			DaysRemaining:            &zero,
			AverageDailyContribution: decimal.Zero,
			Message:                  "Goal already reached!",
		}
	}

	dailyAverage := currentAmount.Div(decimal.NewFromInt(projectionWindowDays))
	if dailyAverage.LessThanOrEqual(decimal.Zero) {
		return Projection{
			AverageDailyContribution: decimal.Zero,
			Message:                  "Not enough data for projection",
		}
	}

	days := int(remaining.Div(dailyAverage).Ceil().IntPart())
	estimated := time.Now().AddDate(0, 0, days)

	return Projection{
		EstimatedCompletionDate:  &estimated,
		DaysRemaining:            &days,
		AverageDailyContribution: dailyAverage.Round(2),
		Message:                  "Projected to reach goal in " + strconv.Itoa(days) + " days",
	}
}
