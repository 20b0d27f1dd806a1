package projection

import (
	"math"
	"time"

	"financas/internal/models"
)

// Fixed retirement goal: R$ 600.000 by March 2047
const RetirementTarget = 600000.0

// RetirementEndDate returns the fixed target date of the plan
func RetirementEndDate() time.Time {
	return time.Date(2047, time.March, 1, 0, 0, 0, 0, time.Local)
}

const daysPerMonth = 30.44

// RetirementBalance compounds each contribution individually by its own
// age: age in months = days since the contribution / 30.44, and
// balance = Σ amount * (1+monthlyRate)^age. annualPercent is the plan's
// annual interest rate in percent.
func RetirementBalance(contributions []models.RetirementContribution, annualPercent float64, now time.Time) float64 {
	rate := MonthlyRate(annualPercent / 100)

	var balance float64
	for _, c := range contributions {
		ageInDays := now.Sub(c.Date).Hours() / 24
		ageInMonths := ageInDays / daysPerMonth
		balance += c.Amount * math.Pow(1+rate, ageInMonths)
	}
	return balance
}

// IdealMonthly solves the ordinary-annuity formula for the level payment
// that reaches the fixed target by the fixed end date, given the current
// balance's projected future value. Zero when no months remain or the
// target is already covered.
func IdealMonthly(currentBalance, annualPercent float64, now time.Time) float64 {
	remaining := WholeMonthsBetween(now, RetirementEndDate())
	if remaining == 0 {
		return 0
	}

	rate := MonthlyRate(annualPercent / 100)
	futureBalance := currentBalance * math.Pow(1+rate, float64(remaining))
	stillNeeded := RetirementTarget - futureBalance

	if stillNeeded <= 0 {
		return 0
	}

	payment := stillNeeded * rate / (math.Pow(1+rate, float64(remaining)) - 1)
	return math.Max(0, payment)
}

// EvaluateRetirement derives the full status view of a retirement plan
func EvaluateRetirement(plan *models.RetirementPlan, now time.Time) *models.RetirementStatus {
	balance := RetirementBalance(plan.Contributions, plan.InterestRate, now)
	contributed := plan.TotalContributed()

	return &models.RetirementStatus{
		CurrentBalance:   balance,
		TotalContributed: contributed,
		Earnings:         balance - contributed,
		Progress:         balance / RetirementTarget * 100,
		RemainingMonths:  WholeMonthsBetween(now, RetirementEndDate()),
		IdealMonthly:     IdealMonthly(balance, plan.InterestRate, now),
		TargetAmount:     RetirementTarget,
		TargetDate:       RetirementEndDate(),
	}
}

// EvaluateJourney derives the status view of the 100k journey
func EvaluateJourney(journey *models.Journey, now time.Time) *models.JourneyStatus {
	accumulated := journey.Accumulated()
	remaining := models.JourneyTarget - accumulated
	completed := journey.CompletedMonths(now)
	monthsLeft := journey.TargetMonths - completed

	recommended := 0.0
	if monthsLeft > 0 {
		recommended = remaining / float64(monthsLeft)
	}

	return &models.JourneyStatus{
		Accumulated:        accumulated,
		Remaining:          remaining,
		Progress:           accumulated / models.JourneyTarget * 100,
		CompletedMonths:    completed,
		RemainingMonths:    monthsLeft,
		RecommendedDeposit: recommended,
	}
}
