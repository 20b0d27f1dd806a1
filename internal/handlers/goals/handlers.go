// Package goals serves the dream, 100k journey and retirement endpoints.
package goals

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"financas/internal/models"
	"financas/internal/services/ledger"
	"financas/internal/services/projection"
	"financas/internal/services/storage"

	apphttp "financas/internal/http"
)

var (
	store     *storage.Store
	mutations *ledger.Service
)

// Initialize sets up the goals package with required dependencies
func Initialize(s *storage.Store, m *ledger.Service) {
	store = s
	mutations = m
}

// RegisterRoutes registers all goals routes
func RegisterRoutes(r chi.Router) {
	r.Get("/api/dreams", handleListDreams)
	r.Post("/api/dreams", handleAddDream)
	r.Post("/api/dreams/{id}/deposit", handleDreamDeposit)
	r.Delete("/api/dreams/{id}", handleDeleteDream)

	r.Get("/api/journey", handleJourneyStatus)
	r.Post("/api/journey", handleInitJourney)
	r.Put("/api/journey/months/{index}", handleJourneyDeposit)
	r.Delete("/api/journey", handleResetJourney)

	r.Get("/api/retirement", handleRetirementStatus)
	r.Post("/api/retirement/contributions", handleAddContribution)
	r.Put("/api/retirement/contributions/{index}", handleEditContribution)
	r.Delete("/api/retirement/contributions/{index}", handleRemoveContribution)
	r.Put("/api/retirement/settings", handleRetirementSettings)
}

// dreamView is a dream enriched with derived figures for the client
type dreamView struct {
	models.Dream
	Progress    float64             `json:"progress"`
	Remaining   float64             `json:"remaining"`
	Coordinates *models.Coordinates `json:"coordinates,omitempty"`
}

func toView(d models.Dream) dreamView {
	view := dreamView{
		Dream:     d,
		Progress:  d.Progress(),
		Remaining: d.Remaining(),
	}
	if d.Country != "" {
		if coords, ok := models.LookupCountry(d.Country); ok {
			view.Coordinates = &coords
		}
	}
	return view
}

func handleListDreams(w http.ResponseWriter, r *http.Request) {
	dreams := store.LoadDreams()
	views := make([]dreamView, 0, len(dreams))
	for _, d := range dreams {
		views = append(views, toView(d))
	}
	apphttp.JSONResponse(w, http.StatusOK, views)
}

func handleAddDream(w http.ResponseWriter, r *http.Request) {
	var in ledger.DreamInput
	if err := apphttp.DecodeJSON(r, &in); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	dream, err := mutations.AddDream(in)
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusCreated, toView(*dream))
}

func handleDreamDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	dream, err := mutations.AddToDream(chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ledger.ErrNotFound) {
			status = http.StatusNotFound
		}
		apphttp.ErrorResponse(w, err.Error(), status)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, toView(*dream))
}

func handleDeleteDream(w http.ResponseWriter, r *http.Request) {
	if err := mutations.DeleteDream(chi.URLParam(r, "id")); err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleJourneyStatus(w http.ResponseWriter, r *http.Request) {
	journey := store.LoadJourney()
	if journey == nil {
		apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{"initialized": false})
		return
	}

	apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"initialized": true,
		"journey":     journey,
		"status":      projection.EvaluateJourney(journey, time.Now()),
	})
}

func handleInitJourney(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartingBalance float64    `json:"starting_balance"`
		TargetMonths    int        `json:"target_months"`
		Start           *time.Time `json:"start,omitempty"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	if req.Start != nil {
		start = *req.Start
	}

	journey, err := mutations.InitJourney(req.StartingBalance, req.TargetMonths, start)
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusCreated, journey)
}

func handleJourneyDeposit(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		apphttp.ErrorResponse(w, "invalid month index", http.StatusBadRequest)
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	journey, err := mutations.SetJourneyDeposit(index, req.Amount)
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, journey)
}

func handleResetJourney(w http.ResponseWriter, r *http.Request) {
	if err := mutations.ResetJourney(); err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleRetirementStatus(w http.ResponseWriter, r *http.Request) {
	plan := store.LoadRetirement()
	apphttp.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"plan":   plan,
		"status": projection.EvaluateRetirement(plan, time.Now()),
	})
}

func handleAddContribution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64   `json:"amount"`
		Date   time.Time `json:"date"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	plan, err := mutations.AddContribution(req.Amount, req.Date)
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusCreated, plan)
}

func handleEditContribution(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		apphttp.ErrorResponse(w, "invalid contribution index", http.StatusBadRequest)
		return
	}

	var req struct {
		Amount float64   `json:"amount"`
		Date   time.Time `json:"date"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	plan, err := mutations.EditContribution(index, req.Amount, req.Date)
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, plan)
}

func handleRemoveContribution(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		apphttp.ErrorResponse(w, "invalid contribution index", http.StatusBadRequest)
		return
	}

	plan, err := mutations.RemoveContribution(index)
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	apphttp.JSONResponse(w, http.StatusOK, plan)
}

func handleRetirementSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InterestRate *float64 `json:"interest_rate,omitempty"`
		TargetIncome *float64 `json:"target_income,omitempty"`
	}
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		apphttp.ErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.InterestRate == nil && req.TargetIncome == nil {
		apphttp.ErrorResponse(w, "nothing to update", http.StatusBadRequest)
		return
	}

	var plan *models.RetirementPlan
	var err error
	if req.InterestRate != nil {
		if plan, err = mutations.SetInterestRate(*req.InterestRate); err != nil {
			apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.TargetIncome != nil {
		if plan, err = mutations.SetTargetIncome(*req.TargetIncome); err != nil {
			apphttp.ErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	apphttp.JSONResponse(w, http.StatusOK, plan)
}
