package models

import "time"

// DreamType classifies a savings goal
type DreamType string

const (
	DreamTravel     DreamType = "travel"
	DreamPurchase   DreamType = "purchase"
	DreamSavings    DreamType = "savings"
	DreamInvestment DreamType = "investment"
	DreamEducation  DreamType = "education"
	DreamOther      DreamType = "other"
)

// DreamDeposit is one contribution toward a dream
type DreamDeposit struct {
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Timestamp int64     `json:"timestamp"`
}

// Dream is a user-defined savings goal with optional deadline
type Dream struct {
	ID       string         `json:"id"`
	Type     DreamType      `json:"type"`
	Name     string         `json:"name"`
	Target   float64        `json:"target"`
	Current  float64        `json:"current"`
	Deadline *time.Time     `json:"deadline,omitempty"`
	Country  string         `json:"country,omitempty"`
	City     string         `json:"city,omitempty"`
	History  []DreamDeposit `json:"history"`
}

// Progress returns completion as a percentage of the target
func (d *Dream) Progress() float64 {
	if d.Target <= 0 {
		return 0
	}
	return d.Current / d.Target * 100
}

// Remaining returns the amount still needed to hit the target
func (d *Dream) Remaining() float64 {
	return d.Target - d.Current
}

// JourneyMonth is one deposit slot in the 100k journey plan
type JourneyMonth struct {
	Date    time.Time `json:"date"`
	Deposit float64   `json:"deposit"`
	Balance float64   `json:"balance"` // derived: starting balance + deposits so far
}

// Journey is the fixed-horizon savings plan toward R$ 100.000. The months
// slice is generated once at initialization and only deposit amounts are
// mutated afterward.
type Journey struct {
	StartingBalance float64        `json:"startingBalance"`
	TargetMonths    int            `json:"targetMonths"`
	Months          []JourneyMonth `json:"months"`
}

// JourneyTarget is the fixed goal amount of the plan
const JourneyTarget = 100000.0

// TotalDeposits sums every deposit across the plan
func (j *Journey) TotalDeposits() float64 {
	var sum float64
	for _, m := range j.Months {
		sum += m.Deposit
	}
	return sum
}

// Accumulated returns starting balance plus all deposits
func (j *Journey) Accumulated() float64 {
	return j.StartingBalance + j.TotalDeposits()
}

// CompletedMonths counts slots dated before now that received a deposit
func (j *Journey) CompletedMonths(now time.Time) int {
	count := 0
	for _, m := range j.Months {
		if m.Date.Before(now) && m.Deposit > 0 {
			count++
		}
	}
	return count
}

// RetirementContribution is a single dated deposit toward retirement
type RetirementContribution struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// RetirementPlan holds the contribution history and user-editable scalars.
// The target amount and target date are fixed constants, not stored.
type RetirementPlan struct {
	Contributions []RetirementContribution `json:"contributions"`
	InterestRate  float64                  `json:"interestRate"` // annual %
	TargetIncome  float64                  `json:"targetIncome"`
}

// DefaultRetirementPlan returns the plan used before any data is saved
func DefaultRetirementPlan() *RetirementPlan {
	return &RetirementPlan{
		Contributions: []RetirementContribution{},
		InterestRate:  6,
		TargetIncome:  3000,
	}
}

// TotalContributed sums every contribution amount
func (p *RetirementPlan) TotalContributed() float64 {
	var sum float64
	for _, c := range p.Contributions {
		sum += c.Amount
	}
	return sum
}
