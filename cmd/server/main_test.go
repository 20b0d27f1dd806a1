package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"financas/internal/config"
	"financas/internal/models"
	"financas/internal/services/storage"
	"financas/internal/testutil"
)

// setupTestServer initializes dependencies against a throwaway data
// directory and returns a test server
func setupTestServer(t *testing.T) *testutil.TestServer {
	t.Helper()

	cfg := &config.Config{
		ListenAddr:          ":0",
		Debug:               true,
		DataDirectory:       t.TempDir(),
		AssistantReplyDelay: 0,
	}

	var err error
	store, err = storage.New(cfg.DataDirectory)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if err := SetupDependencies(cfg); err != nil {
		t.Fatalf("Failed to setup dependencies: %v", err)
	}

	router := SetupRouter()
	return testutil.NewTestServer(t, router)
}

// seedTransaction posts a transaction and returns its id
func seedTransaction(t *testing.T, ts *testutil.TestServer, body string) string {
	t.Helper()

	resp := ts.POST("/api/transactions", body)
	var created models.Transaction
	testutil.AssertResponse(t, resp).
		Status(http.StatusCreated).
		ContentTypeJSON().
		JSON(&created)
	if created.ID == "" {
		t.Fatal("Expected created transaction to carry an id")
	}
	return created.ID
}

func currentMonthDate(day int) string {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), day, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := ts.GET("/api/health")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		Contains(`"status":"ok"`)
}

func TestSummaryEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"income","title":"Salário","value":5000,"category":"Salário","date":%q}`,
		currentMonthDate(5)))
	seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"expense","title":"Aluguel","value":1500,"category":"Moradia","date":%q,"paid":true}`,
		currentMonthDate(10)))

	resp := ts.GET("/api/summary")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		ContainsAll(
			`"income_paid":5000`,
			`"expense_paid":1500`,
			`"balance":3500`,
			`"savings_rate":70`,
			`"previous_expenses_paid"`,
			"Moradia",
		)
}

func TestSummaryEndpointForSpecificMonth(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	seedTransaction(t, ts,
		`{"type":"expense","title":"Consulta","value":200,"category":"Saúde","date":"2023-03-10T12:00:00Z","paid":true}`)

	resp := ts.GETWithQuery("/api/summary", map[string]string{
		"year":  "2023",
		"month": "2", // 0-based March
	})
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		ContainsAll(`"year":2023`, `"month":2`, `"expense_paid":200`)
}

func TestTransactionCRUD(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	id := seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"expense","title":"Mercado","value":350,"category":"Alimentação","date":%q}`,
		currentMonthDate(8)))

	// New expenses default to pending
	resp := ts.GET("/api/transactions")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContainsAll("Mercado", `"paid":false`)

	// Update
	resp = ts.PUT("/api/transactions/"+id, fmt.Sprintf(
		`{"type":"expense","title":"Mercado do mês","value":420,"category":"Alimentação","date":%q}`,
		currentMonthDate(8)))
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContainsAll("Mercado do mês", `"value":420`)

	// Toggle paid
	resp = ts.POST("/api/transactions/"+id+"/toggle-paid", "")
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains(`"paid":true`)

	// Delete
	resp = ts.DELETE("/api/transactions/" + id)
	testutil.AssertResponse(t, resp).StatusOK()

	resp = ts.GET("/api/transactions")
	testutil.AssertResponse(t, resp).
		StatusOK().
		NotContains("Mercado")
}

func TestTransactionValidation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"missing title", fmt.Sprintf(`{"type":"expense","value":100,"category":"Lazer","date":%q}`, currentMonthDate(1))},
		{"zero value", fmt.Sprintf(`{"type":"expense","title":"Cinema","value":0,"category":"Lazer","date":%q}`, currentMonthDate(1))},
		{"bad type", fmt.Sprintf(`{"type":"transfer","title":"Cinema","value":100,"category":"Lazer","date":%q}`, currentMonthDate(1))},
		{"missing date", `{"type":"expense","title":"Cinema","value":100,"category":"Lazer"}`},
		{"not json", `{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.POST("/api/transactions", tt.body)
			testutil.AssertResponse(t, resp).
				Status(http.StatusBadRequest).
				Contains(`"error"`)
		})
	}
}

func TestUpdateUnknownTransaction(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := ts.PUT("/api/transactions/nope", fmt.Sprintf(
		`{"type":"expense","title":"Cinema","value":100,"category":"Lazer","date":%q}`,
		currentMonthDate(1)))
	testutil.AssertResponse(t, resp).Status(http.StatusNotFound)
}

func TestPacerEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	// The month's budget comes from the budget-marker entry
	seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"expense","title":"Orçamento do mês","value":3000,"category":"GastosGerais","date":%q}`,
		currentMonthDate(1)))

	now := time.Now()
	monthKey := models.MonthKey(now)

	resp := ts.POST("/api/pacer/day", fmt.Sprintf(
		`{"month_key":%q,"day":1,"value":120.5}`, monthKey))
	testutil.AssertResponse(t, resp).StatusOK()

	resp = ts.GET("/api/pacer")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		ContainsAll(
			`"budget":3000`,
			`"total_spent":120.5`,
			`"is_current_month":true`,
		)
}

func TestPacerDayValidation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"bad month key", `{"month_key":"junho","day":1,"value":10}`},
		{"day out of range", `{"month_key":"2024-5","day":31,"value":10}`},
		{"negative value", `{"month_key":"2024-5","day":1,"value":-10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.POST("/api/pacer/day", tt.body)
			testutil.AssertResponse(t, resp).Status(http.StatusBadRequest)
		})
	}
}

func TestInsightsEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"income","title":"Salário","value":5000,"category":"Salário","date":%q}`,
		currentMonthDate(5)))
	seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"expense","title":"Aluguel","value":1000,"category":"Moradia","date":%q,"paid":true}`,
		currentMonthDate(10)))

	// Savings rate 80%: the excellent-rate insight leads the battery
	resp := ts.GET("/api/insights")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		ContainsAll(
			`"insights"`,
			`"digest"`,
			`"savings_tips"`,
			"Excelente taxa de poupança",
		)
}

func TestInvestmentsEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"expense","title":"CDB","value":2000,"category":"Investimentos","date":%q,"paid":true}`,
		currentMonthDate(3)))

	resp := ts.GET("/api/investments")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		ContainsAll(
			`"total_invested":2000`,
			`"curve"`,
			`"table"`,
			`"monthly_rate"`,
			"Hoje",
		)
}

func TestSimulatorEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := ts.POST("/api/simulator", `{"initial":1000,"monthly":500,"months":12,"cdi_percent":100}`)
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		ContainsAll(
			`"total_invested":7000`,
			`"final_amount"`,
			`"earnings"`,
			"Início",
			"Mês 12",
		)
}

func TestCategoriesEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"expense","title":"Aluguel","value":1500,"category":"Moradia","date":%q,"paid":true}`,
		currentMonthDate(5)))
	seedTransaction(t, ts, fmt.Sprintf(
		`{"type":"expense","title":"Mercado","value":800,"category":"Alimentação","date":%q,"paid":true}`,
		currentMonthDate(8)))

	resp := ts.GET("/api/summary/categories")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		ContainsAll(`"name":"Moradia"`, `"value":1500`, `"name":"Alimentação"`)
}

func TestSimulatorQueryEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := ts.GETWithQuery("/api/simulator", map[string]string{
		"initial": "1000",
		"monthly": "500",
		"months":  "12",
	})
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		Contains(`"total_invested":7000`)

	resp = ts.GETWithQuery("/api/simulator", map[string]string{"months": "abc"})
	testutil.AssertResponse(t, resp).Status(http.StatusBadRequest)
}

func TestSimulatorValidation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"negative initial", `{"initial":-1,"monthly":0,"months":12,"cdi_percent":100}`},
		{"zero months", `{"initial":1000,"monthly":0,"months":0,"cdi_percent":100}`},
		{"too many months", `{"initial":1000,"monthly":0,"months":601,"cdi_percent":100}`},
		{"zero cdi", `{"initial":1000,"monthly":0,"months":12,"cdi_percent":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.POST("/api/simulator", tt.body)
			testutil.AssertResponse(t, resp).Status(http.StatusBadRequest)
		})
	}
}

func TestDreamLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := ts.POST("/api/dreams",
		`{"type":"travel","name":"Japão","target":24000,"country":"Japão","city":"Tóquio"}`)
	var created struct {
		ID          string              `json:"id"`
		Coordinates *models.Coordinates `json:"coordinates"`
	}
	testutil.AssertResponse(t, resp).
		Status(http.StatusCreated).
		ContentTypeJSON().
		JSON(&created)
	if created.ID == "" {
		t.Fatal("Expected created dream to carry an id")
	}
	if created.Coordinates == nil {
		t.Error("Expected coordinates for a known country")
	}

	resp = ts.POST("/api/dreams/"+created.ID+"/deposit", `{"amount":6000}`)
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContainsAll(`"current":6000`, `"progress":25`, `"remaining":18000`)

	resp = ts.GET("/api/dreams")
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains("Japão")

	resp = ts.DELETE("/api/dreams/" + created.ID)
	testutil.AssertResponse(t, resp).StatusOK()

	resp = ts.GET("/api/dreams")
	testutil.AssertResponse(t, resp).
		StatusOK().
		NotContains("Japão")
}

func TestJourneyLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	// Untouched journey reports uninitialized
	resp := ts.GET("/api/journey")
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains(`"initialized":false`)

	resp = ts.POST("/api/journey",
		`{"starting_balance":10000,"target_months":24,"start":"2024-01-01T00:00:00Z"}`)
	testutil.AssertResponse(t, resp).
		Status(http.StatusCreated).
		Contains(`"targetMonths":24`)

	resp = ts.PUT("/api/journey/months/0", `{"amount":2500}`)
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains(`"deposit":2500`)

	resp = ts.GET("/api/journey")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContainsAll(
			`"initialized":true`,
			`"accumulated":12500`,
			`"remaining":87500`,
		)

	resp = ts.DELETE("/api/journey")
	testutil.AssertResponse(t, resp).StatusOK()

	resp = ts.GET("/api/journey")
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains(`"initialized":false`)
}

func TestRetirementLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	// Defaults before any data is saved
	resp := ts.GET("/api/retirement")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContainsAll(
			`"interestRate":6`,
			`"targetIncome":3000`,
			`"target_amount":600000`,
		)

	resp = ts.POST("/api/retirement/contributions",
		`{"amount":1500,"date":"2024-01-15T00:00:00Z"}`)
	testutil.AssertResponse(t, resp).
		Status(http.StatusCreated).
		Contains(`"amount":1500`)

	resp = ts.PUT("/api/retirement/settings", `{"interest_rate":8.5}`)
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains(`"interestRate":8.5`)

	resp = ts.PUT("/api/retirement/settings", `{}`)
	testutil.AssertResponse(t, resp).Status(http.StatusBadRequest)

	resp = ts.DELETE("/api/retirement/contributions/0")
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains(`"contributions":[]`)
}

func TestAssistantConversation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := ts.POST("/api/assistant/open", "")
	testutil.AssertResponse(t, resp).
		StatusOK().
		ContentTypeJSON().
		Contains("Olá! Sou seu assistente financeiro")

	resp = ts.POST("/api/assistant/ask", `{"question":"como economizar?"}`)
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains(`"role":"assistant"`)

	resp = ts.GET("/api/assistant/messages")
	testutil.AssertResponse(t, resp).
		StatusOK().
		Contains("como economizar?")

	resp = ts.POST("/api/assistant/ask", `{"question":""}`)
	testutil.AssertResponse(t, resp).Status(http.StatusBadRequest)

	resp = ts.POST("/api/assistant/reset", "")
	testutil.AssertResponse(t, resp).StatusOK()

	resp = ts.GET("/api/assistant/messages")
	testutil.AssertResponse(t, resp).
		StatusOK().
		NotContains("como economizar?")
}

func TestAssistantFallback(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := ts.POST("/api/assistant/ask", `{"question":"qual a previsão do tempo?"}`)
	var reply struct {
		Content string `json:"content"`
	}
	testutil.AssertResponse(t, resp).
		StatusOK().
		JSON(&reply)
	if !strings.Contains(reply.Content, "não entendi sua pergunta") {
		t.Errorf("Expected the help fallback, got %q", reply.Content)
	}
}
