// Package dashboard serves the aggregation, pacing, insight and
// projection endpoints plus the transaction CRUD surface.
package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"financas/internal/models"
	"financas/internal/services/analysis"
	"financas/internal/services/insights"
	"financas/internal/services/ledger"
	"financas/internal/services/pacer"
	"financas/internal/services/projection"
	"financas/internal/services/storage"

	apphttp "financas/internal/http"
)

var (
	store     *storage.Store
	mutations *ledger.Service
)

// Initialize sets up the dashboard package with required dependencies
func Initialize(s *storage.Store, m *ledger.Service) {
	store = s
	mutations = m
}

// RegisterRoutes registers all dashboard routes
func RegisterRoutes(r chi.Router) {
	r.Get("/api/summary", handleSummary)
	r.Get("/api/summary/categories", handleCategories)
	r.Get("/api/pacer", handlePacer)
	r.Post("/api/pacer/day", handlePacerDay)
	r.Get("/api/insights", handleInsights)
	r.Get("/api/investments", handleInvestments)
	r.Get("/api/simulator", handleSimulatorQuery)
	r.Post("/api/simulator", handleSimulator)

	r.Get("/api/transactions", handleListTransactions)
	r.Post("/api/transactions", handleAddTransaction)
	r.Put("/api/transactions/{id}", handleUpdateTransaction)
	r.Delete("/api/transactions/{id}", handleDeleteTransaction)
	r.Post("/api/transactions/{id}/toggle-paid", handleTogglePaid)
}

// snapshot loads everything the insight battery needs for the month of ref
func snapshot(all *models.TransactionSet, ref time.Time) *insights.Snapshot {
	previous := analysis.Summarize(all, analysis.PreviousMonth(ref))
	return &insights.Snapshot{
		Summary:          analysis.Summarize(all, ref),
		PreviousExpenses: previous.ExpensePaid,
		Dreams:           store.LoadDreams(),
		Journey:          store.LoadJourney(),
		Retirement:       store.LoadRetirement(),
		Now:              ref,
	}
}

func handleSummary(w http.ResponseWriter, r *http.Request) {
	ref := apphttp.ParseMonthQuery(r, time.Now())
	all := models.NewTransactionSet(store.LoadTransactions())

	summary := analysis.Summarize(all, ref)
	previous := analysis.Summarize(all, analysis.PreviousMonth(ref))
	bucket := all.FilterByMonth(ref).SortForDisplay()

	apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"summary":                summary,
		"transactions":           bucket.Transactions,
		"previous_expenses_paid": previous.ExpensePaid,
	})
}

func handleCategories(w http.ResponseWriter, r *http.Request) {
	ref := apphttp.ParseMonthQuery(r, time.Now())
	all := models.NewTransactionSet(store.LoadTransactions())

	apphttp.JSONResponse(w, http.StatusOK, analysis.RankCategories(all.FilterByMonth(ref)))
}

func handlePacer(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	ref := apphttp.ParseMonthQuery(r, now)

	all := models.NewTransactionSet(store.LoadTransactions())
	budget := analysis.MonthlyBudget(all.FilterByMonth(ref))

	result := pacer.Pace(budget, store.LoadDailyLedger(), ref, now)
	apphttp.JSONResponse(w, http.StatusOK, result)
}

func handlePacerDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MonthKey string  `json:"month_key"`
		Day      int     `json:"day"`
		Value    float64 `json:"value"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := mutations.RecordDaySpent(req.MonthKey, req.Day, req.Value); err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleInsights(w http.ResponseWriter, r *http.Request) {
	ref := apphttp.ParseMonthQuery(r, time.Now())
	all := models.NewTransactionSet(store.LoadTransactions())

	generated := insights.Generate(snapshot(all, ref))

	apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"insights":     generated,
		"digest":       insights.Digest(generated),
		"savings_tips": insights.SavingsTips(generated),
	})
}

func handleInvestments(w http.ResponseWriter, r *http.Request) {
	all := models.NewTransactionSet(store.LoadTransactions())
	total := all.FilterInvestments().SumValue()

	apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"total_invested": total,
		"curve":          projection.BalanceCurve(total, 12),
		"table":          projection.ProjectionTable(total, 12),
		"monthly_rate":   projection.MonthlyRate(projection.CDIAnnualRate),
	})
}

func handleSimulator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Initial    float64 `json:"initial"`
		Monthly    float64 `json:"monthly"`
		Months     int     `json:"months"`
		CDIPercent float64 `json:"cdi_percent"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	runSimulation(w, req.Initial, req.Monthly, req.Months, req.CDIPercent)
}

// handleSimulatorQuery accepts the same parameters via the query string.
// Absent amounts default to zero and cdi defaults to 100% of the baseline.
func handleSimulatorQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	initial, err := parseFloatParam(q.Get("initial"), 0)
	if err != nil {
		apphttp.ErrorResponse(w, "invalid initial", http.StatusBadRequest)
		return
	}
	monthly, err := parseFloatParam(q.Get("monthly"), 0)
	if err != nil {
		apphttp.ErrorResponse(w, "invalid monthly", http.StatusBadRequest)
		return
	}
	cdi, err := parseFloatParam(q.Get("cdi"), 100)
	if err != nil {
		apphttp.ErrorResponse(w, "invalid cdi", http.StatusBadRequest)
		return
	}
	months, err := strconv.Atoi(q.Get("months"))
	if err != nil {
		apphttp.ErrorResponse(w, "invalid months", http.StatusBadRequest)
		return
	}

	runSimulation(w, initial, monthly, months, cdi)
}

func parseFloatParam(s string, fallback float64) (float64, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(s, 64)
}

func runSimulation(w http.ResponseWriter, initial, monthly float64, months int, cdiPercent float64) {
	if initial < 0 || monthly < 0 {
		apphttp.ErrorResponse(w, "amounts must not be negative", http.StatusBadRequest)
		return
	}
	if months < 1 || months > 600 {
		apphttp.ErrorResponse(w, "months must be between 1 and 600", http.StatusBadRequest)
		return
	}
	if cdiPercent <= 0 || cdiPercent > 200 {
		apphttp.ErrorResponse(w, "cdi_percent must be between 0 and 200", http.StatusBadRequest)
		return
	}

	result := projection.Simulate(initial, monthly, months, cdiPercent)
	apphttp.JSONResponse(w, http.StatusOK, result)
}

func handleListTransactions(w http.ResponseWriter, r *http.Request) {
	all := models.NewTransactionSet(store.LoadTransactions())

	if r.URL.Query().Get("year") != "" {
		ref := apphttp.ParseMonthQuery(r, time.Now())
		all = all.FilterByMonth(ref)
	}

	apphttp.JSONResponse(w, http.StatusOK, all.SortForDisplay().Transactions)
}

func handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var in ledger.TransactionInput
	if err := apphttp.DecodeJSON(r, &in); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	added, err := mutations.AddTransaction(in)
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusCreated, added)
}

func handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var in ledger.TransactionInput
	if err := apphttp.DecodeJSON(r, &in); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := mutations.UpdateTransaction(chi.URLParam(r, "id"), in)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ledger.ErrNotFound) {
			status = http.StatusNotFound
		}
		apphttp.ErrorResponse(w, err.Error(), status)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, updated)
}

func handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := mutations.DeleteTransaction(chi.URLParam(r, "id")); err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleTogglePaid(w http.ResponseWriter, r *http.Request) {
	toggled, err := mutations.TogglePaid(chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ledger.ErrNotFound) {
			status = http.StatusNotFound
		}
		apphttp.ErrorResponse(w, err.Error(), status)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, toggled)
}
