package models

import "time"

// CategoryTotal is one entry of the ranked category list
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthSummary is the aggregation bundle for one calendar-month bucket.
// Paid and pending sums are tracked separately: dashboard headline totals
// include pending entries, while Balance, SavingsRate and the category
// ranking are paid-only.
type MonthSummary struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 0-based, January = 0

	IncomePaid     float64 `json:"income_paid"`
	IncomePending  float64 `json:"income_pending"`
	IncomeTotal    float64 `json:"income_total"`
	ExpensePaid    float64 `json:"expense_paid"`
	ExpensePending float64 `json:"expense_pending"`
	ExpenseTotal   float64 `json:"expense_total"`

	Balance         float64 `json:"balance"`          // paid income - paid expense
	ForecastBalance float64 `json:"forecast_balance"` // totals including pending
	SavingsRate     float64 `json:"savings_rate"`     // percent, 0 when no paid income

	Categories    []CategoryTotal `json:"categories"` // paid expenses, descending
	TotalInvested float64         `json:"total_invested"`
	MonthlyBudget float64         `json:"monthly_budget"`

	TransactionCount int `json:"transaction_count"`
}

// TopCategory returns the highest-ranked category, or nil when none exist
func (s *MonthSummary) TopCategory() *CategoryTotal {
	if len(s.Categories) == 0 {
		return nil
	}
	return &s.Categories[0]
}

// TopCategories returns at most n leading entries of the ranking
func (s *MonthSummary) TopCategories(n int) []CategoryTotal {
	if len(s.Categories) <= n {
		return s.Categories
	}
	return s.Categories[:n]
}

// Insight severity tags, in the vocabulary of the rule battery
const (
	InsightAlert   = "alert"
	InsightSuccess = "success"
	InsightInfo    = "info"
	InsightWarning = "warning"
	InsightTip     = "tip"
)

// Insight is one generated recommendation record. Action is empty when the
// rule carries no recommended follow-up.
type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// PacerDay is one row of the daily budget table
type PacerDay struct {
	Day       int     `json:"day"`
	Spent     float64 `json:"spent"`
	Available float64 `json:"available"` // signed running value at this day
}

// PacerSummary is the full pacing result for a month
type PacerSummary struct {
	Budget         float64    `json:"budget"`
	DailyBudget    float64    `json:"daily_budget"`
	Days           []PacerDay `json:"days"`
	TotalSpent     float64    `json:"total_spent"`
	AvailableToday float64    `json:"available_today"` // floored at zero for display
	IsCurrentMonth bool       `json:"is_current_month"`
}

// ProjectionRow is one month of the investment projection table
type ProjectionRow struct {
	Month         int     `json:"month"`
	Interest      float64 `json:"interest"`
	Principal     float64 `json:"principal"`
	TotalInterest float64 `json:"total_interest"`
	Accumulated   float64 `json:"accumulated"`
}

// GrowthPoint is one sample of a projection curve for charting
type GrowthPoint struct {
	Label     string  `json:"label"`
	Invested  float64 `json:"invested"`
	Projected float64 `json:"projected"`
}

// SimulationResult is the outcome of the investment simulator
type SimulationResult struct {
	TotalInvested float64       `json:"total_invested"`
	Earnings      float64       `json:"earnings"`
	FinalAmount   float64       `json:"final_amount"`
	Curve         []GrowthPoint `json:"curve"`
}

// RetirementStatus is the derived view of the retirement plan
type RetirementStatus struct {
	CurrentBalance   float64   `json:"current_balance"`
	TotalContributed float64   `json:"total_contributed"`
	Earnings         float64   `json:"earnings"`
	Progress         float64   `json:"progress"` // percent of target
	RemainingMonths  int       `json:"remaining_months"`
	IdealMonthly     float64   `json:"ideal_monthly"`
	TargetAmount     float64   `json:"target_amount"`
	TargetDate       time.Time `json:"target_date"`
}

// JourneyStatus is the derived view of the 100k journey
type JourneyStatus struct {
	Accumulated        float64 `json:"accumulated"`
	Remaining          float64 `json:"remaining"`
	Progress           float64 `json:"progress"` // percent of target
	CompletedMonths    int     `json:"completed_months"`
	RemainingMonths    int     `json:"remaining_months"`
	RecommendedDeposit float64 `json:"recommended_deposit"`
}
