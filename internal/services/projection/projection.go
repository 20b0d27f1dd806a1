// Package projection holds the compound-interest math behind the
// investment simulator, the 100k journey and the retirement planner.
//
// Two distinct compounding algorithms live here on purpose: the generic
// projector steps a single balance month by month with end-of-period
// contributions, while the retirement planner compounds each contribution
// individually by its own age. They produce different numbers for similar
// inputs and both are kept as-is.
package projection

import (
	"fmt"
	"math"
	"time"

	"financas/internal/models"
)

// CDIAnnualRate is the reference annual rate used as the baseline for
// investment projections (11.75% a year)
const CDIAnnualRate = 0.1175

// MonthlyRate converts an annual nominal rate (as a fraction) to the
// effective monthly rate: (1+annual)^(1/12) - 1. This is true monthly
// compounding, not annual/12.
func MonthlyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12.0) - 1
}

// CDIFraction scales the CDI baseline by a user-chosen percentage of it
func CDIFraction(percent float64) float64 {
	return CDIAnnualRate * percent / 100
}

// FutureValue projects a balance over the given number of months.
// Contributions are applied at the end of each period (ordinary annuity);
// zero months returns the initial amount unchanged.
func FutureValue(initial, monthly float64, months int, annual float64) float64 {
	rate := MonthlyRate(annual)
	total := initial
	for i := 0; i < months; i++ {
		total = total*(1+rate) + monthly
	}
	return total
}

// Simulate runs the investment simulator: initial deposit plus a fixed
// monthly contribution over months, at cdiPercent of the CDI baseline.
func Simulate(initial, monthly float64, months int, cdiPercent float64) *models.SimulationResult {
	annual := CDIFraction(cdiPercent)
	totalInvested := initial + monthly*float64(months)
	finalAmount := FutureValue(initial, monthly, months, annual)

	return &models.SimulationResult{
		TotalInvested: totalInvested,
		Earnings:      finalAmount - totalInvested,
		FinalAmount:   finalAmount,
		Curve:         simulatorCurve(initial, monthly, months, annual),
	}
}

// simulatorCurve samples invested-vs-projected values month by month
func simulatorCurve(initial, monthly float64, months int, annual float64) []models.GrowthPoint {
	rate := MonthlyRate(annual)

	curve := make([]models.GrowthPoint, 0, months+1)
	curve = append(curve, models.GrowthPoint{Label: "Início", Invested: initial, Projected: initial})

	invested := initial
	projected := initial
	for i := 1; i <= months; i++ {
		invested += monthly
		projected = projected*(1+rate) + monthly
		curve = append(curve, models.GrowthPoint{
			Label:     fmt.Sprintf("Mês %d", i),
			Invested:  invested,
			Projected: projected,
		})
	}
	return curve
}

// BalanceCurve projects an already-invested total at 100% of CDI with no
// further contributions, one point per month
func BalanceCurve(total float64, months int) []models.GrowthPoint {
	rate := MonthlyRate(CDIAnnualRate)

	curve := make([]models.GrowthPoint, 0, months+1)
	curve = append(curve, models.GrowthPoint{Label: "Hoje", Invested: total, Projected: total})

	projected := total
	for i := 1; i <= months; i++ {
		projected *= 1 + rate
		curve = append(curve, models.GrowthPoint{
			Label:     fmt.Sprintf("%dm", i),
			Invested:  total,
			Projected: projected,
		})
	}
	return curve
}

// ProjectionTable breaks down month-by-month interest on a principal at
// 100% of CDI: interest earned that month, cumulative interest and the
// accumulated balance
func ProjectionTable(principal float64, months int) []models.ProjectionRow {
	rate := MonthlyRate(CDIAnnualRate)

	rows := make([]models.ProjectionRow, 0, months)
	accumulated := principal
	totalInterest := 0.0

	for i := 1; i <= months; i++ {
		interest := accumulated * rate
		totalInterest += interest
		accumulated += interest

		rows = append(rows, models.ProjectionRow{
			Month:         i,
			Interest:      interest,
			Principal:     principal,
			TotalInterest: totalInterest,
			Accumulated:   accumulated,
		})
	}
	return rows
}

// WholeMonthsBetween returns the whole-month difference between now and a
// later date, floored at zero
func WholeMonthsBetween(now, end time.Time) int {
	months := (end.Year()-now.Year())*12 + int(end.Month()) - int(now.Month())
	if months < 0 {
		return 0
	}
	return months
}
