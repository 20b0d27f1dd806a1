package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"financas/internal/models"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func testData() *Data {
	set := models.NewTransactionSet([]models.Transaction{
		{ID: "1", Type: models.Income, Title: "Salário", Value: 5000, Category: "Salário", Date: date(2024, 6, 5), Paid: true},
		{ID: "2", Type: models.Expense, Title: "Aluguel", Value: 1500, Category: "Moradia", Date: date(2024, 6, 5), Paid: true},
		{ID: "3", Type: models.Expense, Title: "Mercado", Value: 800, Category: "Alimentação", Date: date(2024, 6, 10), Paid: true},
		{ID: "4", Type: models.Expense, Title: "CDB", Value: 1000, Category: "Investimentos", Date: date(2024, 6, 12), Paid: true},
		{ID: "5", Type: models.Expense, Title: "Farmácia", Value: 200, Category: "Saúde", Date: date(2024, 3, 8), Paid: true},
		{ID: "6", Type: models.Income, Title: "Salário", Value: 5000, Category: "Salário", Date: date(2024, 3, 5), Paid: true},
	})
	for i := range set.Transactions {
		set.Transactions[i].ComputeDerivedFlags()
	}
	return &Data{Transactions: set}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRespondPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantPart string
	}{
		{"retirement outranks investing", "quero me aposentar e investir", "aposentadoria"},
		{"journey outranks spending", "quanto gastei na jornada?", "Jornada 100k"},
		{"spending outranks savings", "meus gastos e como economizar", "gastos este mês"},
		{"savings outranks health", "como economizar na minha situação financeira", "Dicas de economia"},
		{"health outranks category", "situação financeira por categoria", "Saúde Financeira"},
		{"category outranks investment", "qual categoria de investimento", "Ranking de gastos"},
		{"investment outranks dreams", "investir na minha meta", "Análise de Investimentos"},
		{"dreams on their own", "quais são meus sonhos?", "Metas & Sonhos"},
	}

	data := testData()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Respond(tt.question, data, testNow)
			if !strings.Contains(got, tt.wantPart) {
				t.Errorf("Respond(%q) = %q, want it to contain %q", tt.question, got, tt.wantPart)
			}
		})
	}
}

func TestRespondIsCaseInsensitive(t *testing.T) {
	got := Respond("  QUANTO GASTEI ESTE MÊS?  ", testData(), testNow)
	if !strings.Contains(got, "Seus gastos este mês") {
		t.Errorf("uppercase question not routed: %q", got)
	}
}

func TestSpendingAnswerCurrentMonth(t *testing.T) {
	got := Respond("quanto gastei este mês?", testData(), testNow)

	for _, want := range []string{
		"• Total: R$ 3.300,00",
		"Maior categoria: Moradia (R$ 1.500,00)",
		"1. Moradia: R$ 1.500,00",
		"2. Investimentos: R$ 1.000,00",
		"3. Alimentação: R$ 800,00",
		`💡 Dica: Pergunte "quanto gastei em janeiro?"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("answer missing %q:\n%s", want, got)
		}
	}
}

func TestSpendingAnswerNamedMonth(t *testing.T) {
	got := Respond("quanto gastei em março?", testData(), testNow)

	for _, want := range []string{
		"💰 Gastos de março 2024:",
		"• Total: R$ 200,00",
		"• Receitas: R$ 5.000,00",
		"• Saldo: R$ 4.800,00",
		"1. Saúde: R$ 200,00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("answer missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Dica: Pergunte") {
		t.Error("named-month answer must not carry the hint")
	}
}

func TestSpendingAnswerEmptyMonth(t *testing.T) {
	got := Respond("quanto gastei em janeiro?", testData(), testNow)

	if !strings.Contains(got, "💰 Gastos de janeiro 2024:") {
		t.Errorf("wrong header: %q", got)
	}
	if !strings.Contains(got, "• Total: R$ 0,00") {
		t.Errorf("empty month should report R$ 0,00: %q", got)
	}
	if !strings.Contains(got, "Nenhum gasto registrado neste mês") {
		t.Errorf("empty month should say so: %q", got)
	}
}

func TestSpendingAnswerLastMonthPhrase(t *testing.T) {
	got := Respond("quanto gastei no mês passado?", testData(), testNow)
	if !strings.Contains(got, "💰 Gastos de mês passado 2024:") {
		t.Errorf("phrase label not echoed: %q", got)
	}
}

func TestHealthAnswerTiers(t *testing.T) {
	tests := []struct {
		name    string
		income  float64
		expense float64
		want    string
	}{
		{"low savings", 1000, 950, "🔴 Precisa melhorar"},
		{"regular savings", 1000, 850, "🟡 Regular"},
		{"good savings", 1000, 700, "🟢 Boa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := models.NewTransactionSet([]models.Transaction{
				{ID: "1", Type: models.Income, Value: tt.income, Category: "Salário", Date: testNow, Paid: true},
				{ID: "2", Type: models.Expense, Value: tt.expense, Category: "Moradia", Date: testNow, Paid: true},
			})
			got := Respond("analise minha saúde financeira", &Data{Transactions: set}, testNow)
			if !strings.Contains(got, tt.want) {
				t.Errorf("want status %q in:\n%s", tt.want, got)
			}
		})
	}
}

func TestCategoryAnswerCarriesShares(t *testing.T) {
	got := Respond("onde gasto mais?", testData(), testNow)
	// Moradia is 1500 of 3300 paid expenses
	if !strings.Contains(got, "1. Moradia: R$ 1.500,00 (45%)") {
		t.Errorf("ranking with shares missing:\n%s", got)
	}
}

func TestInvestmentAnswer(t *testing.T) {
	t.Run("with room to invest", func(t *testing.T) {
		got := Respond("devo investir?", testData(), testNow)
		if !strings.Contains(got, "Total investido: R$ 1.000,00") {
			t.Errorf("missing invested total:\n%s", got)
		}
		if !strings.Contains(got, "✅ Você tem condições de investir este mês!") {
			t.Errorf("balance of 1700 should suggest investing:\n%s", got)
		}
	})

	t.Run("without room", func(t *testing.T) {
		set := models.NewTransactionSet([]models.Transaction{
			{ID: "1", Type: models.Income, Value: 1000, Category: "Salário", Date: testNow, Paid: true},
			{ID: "2", Type: models.Expense, Value: 900, Category: "Moradia", Date: testNow, Paid: true},
		})
		got := Respond("devo investir?", &Data{Transactions: set}, testNow)
		if !strings.Contains(got, "⚠️ Foque primeiro em aumentar sua poupança mensal.") {
			t.Errorf("balance of 100 should not suggest investing:\n%s", got)
		}
	})
}

func TestUnstartedFeaturePrompts(t *testing.T) {
	data := testData()

	if got := Respond("como está a jornada?", data, testNow); !strings.Contains(got, "ainda não iniciou a Jornada 100k") {
		t.Errorf("nil journey should prompt setup: %q", got)
	}
	if got := Respond("como está minha aposentadoria?", data, testNow); !strings.Contains(got, "ainda não iniciou seu planejamento") {
		t.Errorf("nil retirement should prompt setup: %q", got)
	}
	if got := Respond("quais minhas metas?", data, testNow); !strings.Contains(got, "ainda não cadastrou nenhum sonho") {
		t.Errorf("no dreams should prompt setup: %q", got)
	}
}

func TestJourneyAnswerListsRecentDeposits(t *testing.T) {
	data := testData()
	data.Journey = &models.Journey{
		StartingBalance: 10000,
		TargetMonths:    24,
		Months: []models.JourneyMonth{
			{Date: date(2024, 2, 1), Deposit: 2000},
			{Date: date(2024, 3, 1), Deposit: 0},
			{Date: date(2024, 4, 1), Deposit: 2500},
			{Date: date(2024, 5, 1), Deposit: 3000},
			{Date: date(2024, 6, 1), Deposit: 1500},
		},
	}

	got := Respond("como vai a jornada 100k?", data, testNow)

	if !strings.Contains(got, "Acumulado: R$ 19.000,00 (19.0%)") {
		t.Errorf("wrong accumulated line:\n%s", got)
	}
	// 4 deposited months dated before now
	if !strings.Contains(got, "Meses completos: 4/24") {
		t.Errorf("wrong completed months:\n%s", got)
	}
	// newest first, zero-deposit months skipped, oldest deposit dropped
	idxJun := strings.Index(got, "junho de 2024: R$ 1.500,00")
	idxMay := strings.Index(got, "maio de 2024: R$ 3.000,00")
	idxApr := strings.Index(got, "abril de 2024: R$ 2.500,00")
	if idxJun == -1 || idxMay == -1 || idxApr == -1 || !(idxJun < idxMay && idxMay < idxApr) {
		t.Errorf("recent deposits wrong or out of order:\n%s", got)
	}
	if strings.Contains(got, "fevereiro") {
		t.Errorf("only the last three deposits should be listed:\n%s", got)
	}
}

func TestDreamsAnswer(t *testing.T) {
	data := testData()
	data.Dreams = []models.Dream{
		{ID: "d1", Name: "Viagem ao Japão", Target: 30000, Current: 7500},
		{ID: "d2", Name: "Notebook novo", Target: 8000, Current: 8000},
	}

	got := Respond("quais são meus sonhos?", data, testNow)
	if !strings.Contains(got, "1. Viagem ao Japão\n   25% completo (R$ 7.500,00 de R$ 30.000,00)") {
		t.Errorf("dream line wrong:\n%s", got)
	}
	if !strings.Contains(got, "2. Notebook novo\n   100% completo") {
		t.Errorf("second dream line wrong:\n%s", got)
	}
}

func TestHelpFallback(t *testing.T) {
	got := Respond("qual a previsão do tempo?", testData(), testNow)
	if !strings.Contains(got, "🤔 Desculpe, não entendi sua pergunta.") {
		t.Errorf("unrecognized question should get help text: %q", got)
	}
	for _, example := range []string{
		`"Quanto gastei este mês?"`,
		`"Como está a Jornada 100k?"`,
		`"Quais são meus sonhos?"`,
	} {
		if !strings.Contains(got, example) {
			t.Errorf("help text missing example %s", example)
		}
	}
}

func TestWelcomeMessageDigest(t *testing.T) {
	got := WelcomeMessage(testData(), testNow)
	if !strings.Contains(got, "👋 Olá! Sou seu assistente financeiro inteligente.") {
		t.Errorf("missing greeting: %q", got)
	}
	if !strings.Contains(got, "1. ") {
		t.Errorf("welcome should list at least one insight: %q", got)
	}
	if strings.Contains(got, "4. ") {
		t.Errorf("welcome digest is capped at three insights: %q", got)
	}
}

func staticSource(data *Data) Source {
	return func() (*Data, error) { return data, nil }
}

func TestSessionOpenShowsWelcomeOnce(t *testing.T) {
	sess := NewSession(staticSource(testData()))
	sess.SetDelay(0)

	first, err := sess.Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(first) != 1 || first[0].Role != "assistant" {
		t.Fatalf("expected a single welcome message, got %v", first)
	}

	again, err := sess.Open()
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(again) != 1 {
		t.Errorf("reopening must not repeat the welcome, got %d messages", len(again))
	}
}

func TestSessionAsk(t *testing.T) {
	sess := NewSession(staticSource(testData()))
	sess.SetDelay(0)

	reply, err := sess.Ask(context.Background(), "quanto gastei este mês?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply.Role != "assistant" || !strings.Contains(reply.Content, "Seus gastos este mês") {
		t.Errorf("unexpected reply: %+v", reply)
	}

	msgs := sess.Messages()
	if len(msgs) != 2 {
		t.Fatalf("want question and answer in history, got %d messages", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Errorf("history order wrong: %v, %v", msgs[0].Role, msgs[1].Role)
	}
}

func TestSessionAskRejectsEmptyQuestion(t *testing.T) {
	sess := NewSession(staticSource(testData()))
	if _, err := sess.Ask(context.Background(), "   "); err == nil {
		t.Error("blank question should error")
	}
}

func TestSessionAskCancelDiscardsReply(t *testing.T) {
	sess := NewSession(staticSource(testData()))
	sess.SetDelay(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := sess.Ask(ctx, "quanto gastei?")
		done <- err
	}()

	cancel()
	if err := <-done; err == nil {
		t.Fatal("cancelled ask should return an error")
	}

	msgs := sess.Messages()
	if len(msgs) != 1 || msgs[0].Role != "user" {
		t.Errorf("question should remain, reply discarded: %v", msgs)
	}
}

func TestSessionReset(t *testing.T) {
	sess := NewSession(staticSource(testData()))
	sess.SetDelay(0)

	if _, err := sess.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	sess.Reset()
	if len(sess.Messages()) != 0 {
		t.Error("reset should clear the history")
	}

	msgs, err := sess.Open()
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("welcome should return after reset, got %d messages", len(msgs))
	}
}
