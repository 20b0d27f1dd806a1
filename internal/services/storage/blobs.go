package storage

import (
	"encoding/json"
	"log"
	"os"

	"financas/internal/models"
)

// Typed collection access. Reads recover from missing or malformed blobs
// by substituting an empty collection (or nil plan), never an error to
// the caller. Writes replace the whole blob.

// LoadTransactions returns the stored transaction list with derived
// category flags populated
func (s *Store) LoadTransactions() []models.Transaction {
	var transactions []models.Transaction
	if !s.loadJSON(KeyTransactions, &transactions) {
		return []models.Transaction{}
	}
	for i := range transactions {
		transactions[i].ComputeDerivedFlags()
	}
	return transactions
}

// SaveTransactions replaces the stored transaction list
func (s *Store) SaveTransactions(transactions []models.Transaction) error {
	return s.saveJSON(KeyTransactions, transactions)
}

// LoadDailyLedger returns the stored per-day spending ledger
func (s *Store) LoadDailyLedger() models.DailyLedger {
	var ledger models.DailyLedger
	if !s.loadJSON(KeyDailySpending, &ledger) || ledger == nil {
		return models.DailyLedger{}
	}
	return ledger
}

// SaveDailyLedger replaces the stored spending ledger
func (s *Store) SaveDailyLedger(ledger models.DailyLedger) error {
	return s.saveJSON(KeyDailySpending, ledger)
}

// LoadDreams returns the stored dream list
func (s *Store) LoadDreams() []models.Dream {
	var dreams []models.Dream
	if !s.loadJSON(KeyDreams, &dreams) {
		return []models.Dream{}
	}
	return dreams
}

// SaveDreams replaces the stored dream list
func (s *Store) SaveDreams(dreams []models.Dream) error {
	return s.saveJSON(KeyDreams, dreams)
}

// LoadJourney returns the stored 100k journey plan, or nil when the
// journey has not been initialized
func (s *Store) LoadJourney() *models.Journey {
	var journey models.Journey
	if !s.loadJSON(KeyJourney, &journey) {
		return nil
	}
	if journey.TargetMonths == 0 {
		return nil
	}
	return &journey
}

// SaveJourney replaces the stored journey plan
func (s *Store) SaveJourney(journey *models.Journey) error {
	return s.saveJSON(KeyJourney, journey)
}

// DeleteJourney removes the journey blob (full reset)
func (s *Store) DeleteJourney() error {
	err := os.Remove(s.path(KeyJourney))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// LoadRetirement returns the stored retirement plan, with defaults
// substituted for missing data or scalars
func (s *Store) LoadRetirement() *models.RetirementPlan {
	var plan models.RetirementPlan
	if !s.loadJSON(KeyRetirement, &plan) {
		return models.DefaultRetirementPlan()
	}
	if plan.Contributions == nil {
		plan.Contributions = []models.RetirementContribution{}
	}
	if plan.InterestRate == 0 {
		plan.InterestRate = 6
	}
	if plan.TargetIncome == 0 {
		plan.TargetIncome = 3000
	}
	return &plan
}

// SaveRetirement replaces the stored retirement plan
func (s *Store) SaveRetirement(plan *models.RetirementPlan) error {
	return s.saveJSON(KeyRetirement, plan)
}

// DeleteRetirement removes the retirement blob (full reset)
func (s *Store) DeleteRetirement() error {
	err := os.Remove(s.path(KeyRetirement))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// loadJSON reads and decodes a blob. Returns false when the blob is
// missing or malformed; a malformed blob is logged and treated as absent.
func (s *Store) loadJSON(key string, v interface{}) bool {
	data, err := s.Read(key)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Warning: malformed blob %s, using defaults: %v", key, err)
		return false
	}
	return true
}

func (s *Store) saveJSON(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.Write(key, data)
}
