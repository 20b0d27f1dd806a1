package models

import (
	"sort"
	"time"
)

// TransactionType indicates whether a transaction is income or an expense
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Reserved category names used by the stored data format. They are
// translated into typed flags when a blob is decoded; calculation code
// never compares against these strings.
const (
	InvestmentCategory   = "Investimentos"
	BudgetMarkerCategory = "GastosGerais"
	SalaryCategory       = "Salário"
)

// Transaction represents a single income or expense entry
type Transaction struct {
	ID       string          `json:"id"`
	Type     TransactionType `json:"type"`
	Title    string          `json:"title"`
	Value    float64         `json:"value"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
	Paid     bool            `json:"paid"`

	// Derived flags (computed on decode, not stored)
	IsInvestment   bool `json:"-"`
	IsBudgetMarker bool `json:"-"`
}

// ComputeDerivedFlags translates reserved category names into typed flags
func (t *Transaction) ComputeDerivedFlags() {
	t.IsInvestment = t.Category == InvestmentCategory
	t.IsBudgetMarker = t.Category == BudgetMarkerCategory
}

// SameMonth reports whether the transaction falls in the same calendar
// month and year as ref (local calendar fields, no day-range checks)
func (t *Transaction) SameMonth(ref time.Time) bool {
	return t.Date.Month() == ref.Month() && t.Date.Year() == ref.Year()
}

// TransactionSet wraps a slice with filtering/aggregation methods
type TransactionSet struct {
	Transactions []Transaction
}

// NewTransactionSet creates a new TransactionSet from a slice
func NewTransactionSet(transactions []Transaction) *TransactionSet {
	return &TransactionSet{Transactions: transactions}
}

// Len returns the number of transactions
func (ts *TransactionSet) Len() int {
	return len(ts.Transactions)
}

// FilterByType returns transactions of the specified type
func (ts *TransactionSet) FilterByType(tt TransactionType) *TransactionSet {
	result := &TransactionSet{}
	for _, t := range ts.Transactions {
		if t.Type == tt {
			result.Transactions = append(result.Transactions, t)
		}
	}
	return result
}

// FilterPaid returns transactions with the given paid state
func (ts *TransactionSet) FilterPaid(paid bool) *TransactionSet {
	result := &TransactionSet{}
	for _, t := range ts.Transactions {
		if t.Paid == paid {
			result.Transactions = append(result.Transactions, t)
		}
	}
	return result
}

// FilterByMonth returns transactions in the same calendar month as ref
func (ts *TransactionSet) FilterByMonth(ref time.Time) *TransactionSet {
	result := &TransactionSet{}
	for _, t := range ts.Transactions {
		if t.SameMonth(ref) {
			result.Transactions = append(result.Transactions, t)
		}
	}
	return result
}

// FilterInvestments returns paid expenses flagged as investment principal
func (ts *TransactionSet) FilterInvestments() *TransactionSet {
	result := &TransactionSet{}
	for _, t := range ts.Transactions {
		if t.Type == Expense && t.IsInvestment && t.Paid {
			result.Transactions = append(result.Transactions, t)
		}
	}
	return result
}

// SumValue returns the sum of all transaction values
func (ts *TransactionSet) SumValue() float64 {
	var sum float64
	for _, t := range ts.Transactions {
		sum += t.Value
	}
	return sum
}

// FindByID returns the transaction with the given id, or nil
func (ts *TransactionSet) FindByID(id string) *Transaction {
	for i := range ts.Transactions {
		if ts.Transactions[i].ID == id {
			return &ts.Transactions[i]
		}
	}
	return nil
}

// SortByDateDesc sorts transactions by date (descending, stable)
func (ts *TransactionSet) SortByDateDesc() *TransactionSet {
	sorted := make([]Transaction, len(ts.Transactions))
	copy(sorted, ts.Transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return &TransactionSet{Transactions: sorted}
}

// SortForDisplay orders the default list view: salary entries first, then
// remaining income before expenses, keeping insertion order otherwise
func (ts *TransactionSet) SortForDisplay() *TransactionSet {
	sorted := make([]Transaction, len(ts.Transactions))
	copy(sorted, ts.Transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Category == SalaryCategory && b.Category != SalaryCategory {
			return true
		}
		if a.Category != SalaryCategory && b.Category == SalaryCategory {
			return false
		}
		return a.Type == Income && b.Type == Expense
	})
	return &TransactionSet{Transactions: sorted}
}

// Copy creates a shallow copy of the TransactionSet
func (ts *TransactionSet) Copy() *TransactionSet {
	copied := make([]Transaction, len(ts.Transactions))
	copy(copied, ts.Transactions)
	return &TransactionSet{Transactions: copied}
}
