// Package ledger applies validated mutations to the stored collections.
// Every method loads the current blob, applies the change and writes the
// whole blob back; the storage layer makes each write atomic.
package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"financas/internal/models"
	"financas/internal/services/storage"
)

var ErrNotFound = errors.New("not found")

type Service struct {
	store *storage.Store
	now   func() time.Time
}

func NewService(store *storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// TransactionInput carries the user-editable fields of a transaction.
// Paid is a pointer so "not sent" can be told apart from "false": new
// income entries default to paid, new expenses to pending.
type TransactionInput struct {
	Type     models.TransactionType `json:"type"`
	Title    string                 `json:"title"`
	Value    float64                `json:"value"`
	Category string                 `json:"category"`
	Date     time.Time              `json:"date"`
	Paid     *bool                  `json:"paid"`
}

func (in *TransactionInput) validate() error {
	if in.Type != models.Income && in.Type != models.Expense {
		return fmt.Errorf("invalid transaction type %q", in.Type)
	}
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title is required")
	}
	if in.Value <= 0 {
		return errors.New("value must be positive")
	}
	if strings.TrimSpace(in.Category) == "" {
		return errors.New("category is required")
	}
	if in.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// AddTransaction validates and stores a new transaction
func (s *Service) AddTransaction(in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	paid := in.Type == models.Income
	if in.Paid != nil {
		paid = *in.Paid
	}

	t := models.Transaction{
		ID:       uuid.New().String(),
		Type:     in.Type,
		Title:    strings.TrimSpace(in.Title),
		Value:    in.Value,
		Category: strings.TrimSpace(in.Category),
		Date:     in.Date,
		Paid:     paid,
	}
	t.ComputeDerivedFlags()

	transactions := append(s.store.LoadTransactions(), t)
	if err := s.store.SaveTransactions(transactions); err != nil {
		return nil, fmt.Errorf("save transactions: %w", err)
	}
	return &t, nil
}

// UpdateTransaction replaces the editable fields of an existing transaction
func (s *Service) UpdateTransaction(id string, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	transactions := s.store.LoadTransactions()
	for i := range transactions {
		if transactions[i].ID != id {
			continue
		}
		t := &transactions[i]
		t.Type = in.Type
		t.Title = strings.TrimSpace(in.Title)
		t.Value = in.Value
		t.Category = strings.TrimSpace(in.Category)
		t.Date = in.Date
		if in.Paid != nil {
			t.Paid = *in.Paid
		}
		t.ComputeDerivedFlags()

		if err := s.store.SaveTransactions(transactions); err != nil {
			return nil, fmt.Errorf("save transactions: %w", err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// DeleteTransaction removes a transaction. Deleting an unknown id is a
// no-op, matching the idempotent delete the frontend expects.
func (s *Service) DeleteTransaction(id string) error {
	transactions := s.store.LoadTransactions()
	kept := transactions[:0]
	for _, t := range transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(transactions) {
		return nil
	}
	if err := s.store.SaveTransactions(kept); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

// TogglePaid flips the paid flag of a transaction
func (s *Service) TogglePaid(id string) (*models.Transaction, error) {
	transactions := s.store.LoadTransactions()
	for i := range transactions {
		if transactions[i].ID != id {
			continue
		}
		transactions[i].Paid = !transactions[i].Paid
		if err := s.store.SaveTransactions(transactions); err != nil {
			return nil, fmt.Errorf("save transactions: %w", err)
		}
		return &transactions[i], nil
	}
	return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// RecordDaySpent stores the spend for one day of a month. The month key
// uses the stored "year-0basedMonth" format; the day must exist in that
// month.
func (s *Service) RecordDaySpent(monthKey string, day int, value float64) error {
	year, month, err := parseMonthKey(monthKey)
	if err != nil {
		return err
	}
	if value < 0 {
		return errors.New("spent value must not be negative")
	}
	if day < 1 || day > models.DaysInMonth(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)) {
		return fmt.Errorf("day %d out of range for %s", day, monthKey)
	}

	ledger := s.store.LoadDailyLedger()
	ledger.SetDaySpent(monthKey, day, value)
	if err := s.store.SaveDailyLedger(ledger); err != nil {
		return fmt.Errorf("save daily spending: %w", err)
	}
	return nil
}

func parseMonthKey(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil || year < 2000 || year > 2200 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 0 || month > 11 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	return year, month, nil
}

// DreamInput carries the user-editable fields of a dream
type DreamInput struct {
	Type     models.DreamType `json:"type"`
	Name     string           `json:"name"`
	Target   float64          `json:"target"`
	Deadline *time.Time       `json:"deadline,omitempty"`
	Country  string           `json:"country,omitempty"`
	City     string           `json:"city,omitempty"`
}

// AddDream validates and stores a new dream
func (s *Service) AddDream(in DreamInput) (*models.Dream, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name is required")
	}
	if in.Target <= 0 {
		return nil, errors.New("target must be positive")
	}
	dreamType := in.Type
	if dreamType == "" {
		dreamType = models.DreamOther
	}

	dream := models.Dream{
		ID:       uuid.New().String(),
		Type:     dreamType,
		Name:     strings.TrimSpace(in.Name),
		Target:   in.Target,
		Deadline: in.Deadline,
		Country:  in.Country,
		City:     in.City,
		History:  []models.DreamDeposit{},
	}

	dreams := append(s.store.LoadDreams(), dream)
	if err := s.store.SaveDreams(dreams); err != nil {
		return nil, fmt.Errorf("save dreams: %w", err)
	}
	return &dream, nil
}

// AddToDream deposits an amount toward a dream, appending to its history
func (s *Service) AddToDream(id string, amount float64) (*models.Dream, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	dreams := s.store.LoadDreams()
	for i := range dreams {
		if dreams[i].ID != id {
			continue
		}
		now := s.now()
		dreams[i].Current += amount
		dreams[i].History = append(dreams[i].History, models.DreamDeposit{
			Amount:    amount,
			Date:      now,
			Timestamp: now.UnixMilli(),
		})
		if err := s.store.SaveDreams(dreams); err != nil {
			return nil, fmt.Errorf("save dreams: %w", err)
		}
		return &dreams[i], nil
	}
	return nil, fmt.Errorf("dream %s: %w", id, ErrNotFound)
}

// DeleteDream removes a dream; unknown ids are a no-op
func (s *Service) DeleteDream(id string) error {
	dreams := s.store.LoadDreams()
	kept := dreams[:0]
	for _, d := range dreams {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(dreams) {
		return nil
	}
	if err := s.store.SaveDreams(kept); err != nil {
		return fmt.Errorf("save dreams: %w", err)
	}
	return nil
}

// InitJourney creates the 100k plan: one slot per month starting at the
// first day of start's month, all deposits zero. Initializing again
// replaces any existing plan.
func (s *Service) InitJourney(startingBalance float64, targetMonths int, start time.Time) (*models.Journey, error) {
	if startingBalance < 0 {
		return nil, errors.New("starting balance must not be negative")
	}
	if targetMonths < 1 {
		return nil, errors.New("target months must be at least 1")
	}

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	months := make([]models.JourneyMonth, targetMonths)
	for i := range months {
		months[i] = models.JourneyMonth{
			Date:    first.AddDate(0, i, 0),
			Balance: startingBalance,
		}
	}

	journey := &models.Journey{
		StartingBalance: startingBalance,
		TargetMonths:    targetMonths,
		Months:          months,
	}
	if err := s.store.SaveJourney(journey); err != nil {
		return nil, fmt.Errorf("save journey: %w", err)
	}
	return journey, nil
}

// SetJourneyDeposit records the deposit for one month slot and recomputes
// the running balances
func (s *Service) SetJourneyDeposit(index int, amount float64) (*models.Journey, error) {
	if amount < 0 {
		return nil, errors.New("deposit must not be negative")
	}

	journey := s.store.LoadJourney()
	if journey == nil {
		return nil, errors.New("journey not initialized")
	}
	if index < 0 || index >= len(journey.Months) {
		return nil, fmt.Errorf("month index %d out of range", index)
	}

	journey.Months[index].Deposit = amount
	running := journey.StartingBalance
	for i := range journey.Months {
		running += journey.Months[i].Deposit
		journey.Months[i].Balance = running
	}

	if err := s.store.SaveJourney(journey); err != nil {
		return nil, fmt.Errorf("save journey: %w", err)
	}
	return journey, nil
}

// ResetJourney discards the plan entirely
func (s *Service) ResetJourney() error {
	return s.store.DeleteJourney()
}

// AddContribution records a retirement deposit
func (s *Service) AddContribution(amount float64, date time.Time) (*models.RetirementPlan, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if date.IsZero() {
		return nil, errors.New("date is required")
	}

	plan := s.store.LoadRetirement()
	plan.Contributions = append(plan.Contributions, models.RetirementContribution{
		Amount: amount,
		Date:   date,
	})
	if err := s.store.SaveRetirement(plan); err != nil {
		return nil, fmt.Errorf("save retirement: %w", err)
	}
	return plan, nil
}

// EditContribution replaces the amount and date of an existing contribution
func (s *Service) EditContribution(index int, amount float64, date time.Time) (*models.RetirementPlan, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if date.IsZero() {
		return nil, errors.New("date is required")
	}

	plan := s.store.LoadRetirement()
	if index < 0 || index >= len(plan.Contributions) {
		return nil, fmt.Errorf("contribution index %d out of range", index)
	}
	plan.Contributions[index] = models.RetirementContribution{Amount: amount, Date: date}
	if err := s.store.SaveRetirement(plan); err != nil {
		return nil, fmt.Errorf("save retirement: %w", err)
	}
	return plan, nil
}

// RemoveContribution deletes a contribution by position
func (s *Service) RemoveContribution(index int) (*models.RetirementPlan, error) {
	plan := s.store.LoadRetirement()
	if index < 0 || index >= len(plan.Contributions) {
		return nil, fmt.Errorf("contribution index %d out of range", index)
	}
	plan.Contributions = append(plan.Contributions[:index], plan.Contributions[index+1:]...)
	if err := s.store.SaveRetirement(plan); err != nil {
		return nil, fmt.Errorf("save retirement: %w", err)
	}
	return plan, nil
}

// SetInterestRate updates the plan's annual interest assumption (percent)
func (s *Service) SetInterestRate(rate float64) (*models.RetirementPlan, error) {
	if rate <= 0 || rate > 100 {
		return nil, errors.New("interest rate must be between 0 and 100")
	}
	plan := s.store.LoadRetirement()
	plan.InterestRate = rate
	if err := s.store.SaveRetirement(plan); err != nil {
		return nil, fmt.Errorf("save retirement: %w", err)
	}
	return plan, nil
}

// SetTargetIncome updates the desired monthly retirement income
func (s *Service) SetTargetIncome(income float64) (*models.RetirementPlan, error) {
	if income <= 0 {
		return nil, errors.New("target income must be positive")
	}
	plan := s.store.LoadRetirement()
	plan.TargetIncome = income
	if err := s.store.SaveRetirement(plan); err != nil {
		return nil, fmt.Errorf("save retirement: %w", err)
	}
	return plan, nil
}
