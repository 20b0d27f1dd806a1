// Package pacer spreads a monthly budget evenly across calendar days and
// tracks cumulative over/under spend per day.
package pacer

import (
	"time"

	"financas/internal/models"
)

// Pace walks every day of ref's month, accumulating the daily budget
// share minus the ledger's recorded spend. Per-row Available is signed;
// the headline AvailableToday is floored at zero and, for the real
// current month, only counts days up to now's day-of-month.
func Pace(budget float64, ledger models.DailyLedger, ref, now time.Time) *models.PacerSummary {
	daysInMonth := models.DaysInMonth(ref)
	dailyBudget := budget / float64(daysInMonth)
	monthKey := models.MonthKey(ref)

	summary := &models.PacerSummary{
		Budget:         budget,
		DailyBudget:    dailyBudget,
		Days:           make([]models.PacerDay, 0, daysInMonth),
		IsCurrentMonth: ref.Month() == now.Month() && ref.Year() == now.Year(),
	}

	accumulated := 0.0
	for day := 1; day <= daysInMonth; day++ {
		spent := ledger.DaySpent(monthKey, day)
		summary.TotalSpent += spent
		accumulated += dailyBudget - spent

		summary.Days = append(summary.Days, models.PacerDay{
			Day:       day,
			Spent:     spent,
			Available: accumulated,
		})
	}

	if summary.IsCurrentMonth {
		availableToday := 0.0
		for day := 1; day <= now.Day(); day++ {
			availableToday += dailyBudget - ledger.DaySpent(monthKey, day)
		}
		summary.AvailableToday = max(0, availableToday)
	} else {
		summary.AvailableToday = max(0, accumulated)
	}

	return summary
}
