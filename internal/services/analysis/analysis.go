// Package analysis turns the raw transaction list into derived monthly
// metrics: paid/pending totals, balances, savings rate, category ranking,
// investment totals and the month's budget figure.
package analysis

import (
	"sort"
	"time"

	"financas/internal/models"
)

// TopCategoryCount is the slice size used for display and insights
const TopCategoryCount = 5

// Summarize aggregates the transactions falling in ref's calendar month.
// The set passed in is the full collection; investment totals deliberately
// span all transactions, not only the bucket.
func Summarize(all *models.TransactionSet, ref time.Time) *models.MonthSummary {
	bucket := all.FilterByMonth(ref)

	summary := &models.MonthSummary{
		Year:             ref.Year(),
		Month:            int(ref.Month()) - 1,
		TransactionCount: bucket.Len(),
	}

	for _, t := range bucket.Transactions {
		switch t.Type {
		case models.Income:
			if t.Paid {
				summary.IncomePaid += t.Value
			} else {
				summary.IncomePending += t.Value
			}
		case models.Expense:
			if t.Paid {
				summary.ExpensePaid += t.Value
			} else {
				summary.ExpensePending += t.Value
			}
		}
	}

	summary.IncomeTotal = summary.IncomePaid + summary.IncomePending
	summary.ExpenseTotal = summary.ExpensePaid + summary.ExpensePending
	summary.Balance = summary.IncomePaid - summary.ExpensePaid
	summary.ForecastBalance = summary.IncomeTotal - summary.ExpenseTotal

	if summary.IncomePaid > 0 {
		summary.SavingsRate = summary.Balance / summary.IncomePaid * 100
	}

	summary.Categories = RankCategories(bucket)
	summary.TotalInvested = all.FilterInvestments().SumValue()
	summary.MonthlyBudget = MonthlyBudget(bucket)

	return summary
}

// RankCategories groups paid expenses by category and sorts descending by
// sum. Ties keep the order in which each category was first encountered.
func RankCategories(bucket *models.TransactionSet) []models.CategoryTotal {
	totals := make(map[string]float64)
	var order []string

	for _, t := range bucket.Transactions {
		if t.Type != models.Expense || !t.Paid {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Value
	}

	ranked := make([]models.CategoryTotal, 0, len(order))
	for _, cat := range order {
		ranked = append(ranked, models.CategoryTotal{Name: cat, Value: totals[cat]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	return ranked
}

// MonthlyBudget returns the value of the first budget-marker expense in
// the bucket, or zero when the month has none
func MonthlyBudget(bucket *models.TransactionSet) float64 {
	for _, t := range bucket.Transactions {
		if t.Type == models.Expense && t.IsBudgetMarker {
			return t.Value
		}
	}
	return 0
}

// PreviousMonth returns a reference date inside the month before ref,
// rolling the year back at the January boundary
func PreviousMonth(ref time.Time) time.Time {
	year, month := ref.Year(), int(ref.Month())-1
	if month == 0 {
		return time.Date(year-1, time.December, 1, 0, 0, 0, 0, ref.Location())
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, ref.Location())
}

// MonthStart returns the first instant of the month containing year and
// the 0-based month index
func MonthStart(year, month int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, loc)
}
