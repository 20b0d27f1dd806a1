// Package assistant answers free-form Portuguese questions about the
// user's finances. Routing is a fixed, ordered keyword scan over the
// lowercased question; the first matching rule renders the answer from a
// fresh financial snapshot.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"financas/internal/models"
	"financas/internal/services/analysis"
	"financas/internal/services/insights"
	"financas/internal/services/projection"
)

// Data is the financial picture a question is answered against
type Data struct {
	Transactions *models.TransactionSet
	Dreams       []models.Dream
	Journey      *models.Journey
	Retirement   *models.RetirementPlan
}

// Respond routes the question through the keyword rules in priority order
// and renders the first match. Unrecognized questions get the help text.
// Rule order matters: "aposentadoria" outranks "jornada" outranks "gasto",
// so a question touching several topics answers the most specific one.
func Respond(question string, data *Data, now time.Time) string {
	q := strings.TrimSpace(strings.ToLower(question))

	switch {
	case containsAny(q, "aposentadoria", "aposentar"):
		return retirementAnswer(data, now)
	case containsAny(q, "100k", "jornada"):
		return journeyAnswer(data, now)
	case containsAny(q, "gastei", "gasto", "despesa"):
		return spendingAnswer(q, data, now)
	case containsAny(q, "economia", "economizar", "poupar"):
		return savingsAnswer(data, now)
	case containsAny(q, "saúde", "financeira", "situação"):
		return healthAnswer(data, now)
	case strings.Contains(q, "categoria") || (strings.Contains(q, "onde") && strings.Contains(q, "mais")):
		return categoryAnswer(data, now)
	case containsAny(q, "investimento", "investir"):
		return investmentAnswer(data, now)
	case containsAny(q, "sonho", "meta", "objetivo"):
		return dreamsAnswer(data)
	}

	return helpAnswer()
}

// WelcomeMessage renders the greeting shown when the chat is first opened:
// a digest of the top generated insights
func WelcomeMessage(data *Data, now time.Time) string {
	digest := insights.Digest(insights.Generate(snapshot(data, now)))

	var b strings.Builder
	b.WriteString("👋 Olá! Sou seu assistente financeiro inteligente.\n\n")
	b.WriteString("📊 Analisei seus dados e encontrei:\n\n")
	for i, insight := range digest {
		fmt.Fprintf(&b, "%d. %s\n", i+1, insight.Title)
	}
	b.WriteString("\n💬 Pergunte-me qualquer coisa sobre suas finanças!")
	return b.String()
}

func containsAny(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// snapshot assembles the insight-rule input from the raw collections
func snapshot(data *Data, now time.Time) *insights.Snapshot {
	previous := analysis.Summarize(data.Transactions, analysis.PreviousMonth(now))
	return &insights.Snapshot{
		Summary:          analysis.Summarize(data.Transactions, now),
		PreviousExpenses: previous.ExpensePaid,
		Dreams:           data.Dreams,
		Journey:          data.Journey,
		Retirement:       data.Retirement,
		Now:              now,
	}
}

func retirementAnswer(data *Data, now time.Time) string {
	if data.Retirement == nil || len(data.Retirement.Contributions) == 0 {
		return "🎯 Você ainda não iniciou seu planejamento de aposentadoria!\n\n" +
			`Vá na aba "Aposentadoria" para começar a planejar seu futuro.`
	}

	status := projection.EvaluateRetirement(data.Retirement, now)

	closing := "💪 Continue aportando para garantir seu futuro!"
	if status.Progress >= 100 {
		closing = "🎉 Parabéns! Você já atingiu a meta!"
	}

	return fmt.Sprintf(
		"🎯 Aposentadoria - Análise Completa:\n\n"+
			"📊 Situação Atual:\n"+
			"• Patrimônio: %s\n"+
			"• Total aportado: %s\n"+
			"• Rendimento: %s\n"+
			"• Progresso: %.1f%%\n\n"+
			"🎯 Meta:\n"+
			"• Objetivo: R$ 600.000\n"+
			"• Falta: %s\n"+
			"• Meses restantes: %d\n"+
			"• Prazo: março/2047\n\n"+
			"💰 Renda desejada: %s/mês\n\n%s",
		models.BRL(status.CurrentBalance),
		models.BRL(status.TotalContributed),
		models.BRL(status.Earnings),
		status.Progress,
		models.BRL(status.TargetAmount-status.CurrentBalance),
		status.RemainingMonths,
		models.BRL(data.Retirement.TargetIncome),
		closing,
	)
}

func journeyAnswer(data *Data, now time.Time) string {
	if data.Journey == nil {
		return "🚀 Você ainda não iniciou a Jornada 100k!\n\n" +
			`Vá na aba "Jornada 100k" para configurar seu planejamento.`
	}

	status := projection.EvaluateJourney(data.Journey, now)

	closing := "💪 Continue depositando!"
	if status.Progress >= 100 {
		closing = "🎉 Meta alcançada!"
	}

	return fmt.Sprintf(
		"🚀 Jornada 100k - Análise Completa:\n\n"+
			"📊 Progresso:\n"+
			"• Acumulado: %s (%.1f%%)\n"+
			"• Falta: %s\n"+
			"• Meses completos: %d/%d\n"+
			"• Meses restantes: %d\n\n"+
			"💰 Recomendação:\n"+
			"• Deposite %s/mês para atingir a meta no prazo\n\n"+
			"📅 Últimos depósitos:\n%s\n\n%s",
		models.BRL(status.Accumulated), status.Progress,
		models.BRL(status.Remaining),
		status.CompletedMonths, data.Journey.TargetMonths,
		status.RemainingMonths,
		models.BRL(status.RecommendedDeposit),
		recentDepositLines(data.Journey),
		closing,
	)
}

// recentDepositLines lists the last three non-zero deposits, newest first
func recentDepositLines(journey *models.Journey) string {
	var recent []models.JourneyMonth
	for _, m := range journey.Months {
		if m.Deposit > 0 {
			recent = append(recent, m)
		}
	}
	if len(recent) == 0 {
		return "• Nenhum depósito realizado ainda"
	}
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	lines := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		lines = append(lines, fmt.Sprintf("• %s: %s", monthYearPTBR(m.Date), models.BRL(m.Deposit)))
	}
	return strings.Join(lines, "\n")
}

func spendingAnswer(q string, data *Data, now time.Time) string {
	if ref := analysis.DetectMonth(q, now); ref != nil {
		summary := analysis.Summarize(data.Transactions, analysis.MonthStart(ref.Year, ref.Month, now.Location()))

		lines := "Nenhum gasto registrado neste mês"
		if len(summary.Categories) > 0 {
			lines = categoryLines(summary.TopCategories(analysis.TopCategoryCount), 0)
		}

		return fmt.Sprintf(
			"💰 Gastos de %s %d:\n\n"+
				"• Total: %s\n"+
				"• Receitas: %s\n"+
				"• Saldo: %s\n\n"+
				"📊 Top 5 categorias:\n%s",
			ref.Label, ref.Year,
			models.BRL(summary.ExpensePaid),
			models.BRL(summary.IncomePaid),
			models.BRL(summary.Balance),
			lines,
		)
	}

	summary := analysis.Summarize(data.Transactions, now)

	top := "N/A"
	if c := summary.TopCategory(); c != nil {
		top = fmt.Sprintf("%s (%s)", c.Name, models.BRL(c.Value))
	}

	return fmt.Sprintf(
		"💰 Seus gastos este mês:\n\n"+
			"• Total: %s\n"+
			"• Maior categoria: %s\n\n"+
			"📊 Top 5 categorias:\n%s\n\n"+
			"💡 Dica: Pergunte \"quanto gastei em janeiro?\" para ver meses específicos!",
		models.BRL(summary.ExpensePaid), top,
		categoryLines(summary.TopCategories(analysis.TopCategoryCount), 0),
	)
}

func savingsAnswer(data *Data, now time.Time) string {
	tips := insights.SavingsTips(insights.Generate(snapshot(data, now)))

	var b strings.Builder
	b.WriteString("💡 Dicas de economia personalizadas:\n\n")
	for i, tip := range tips {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s\n   %s", i+1, tip.Title, tip.Action)
	}
	return b.String()
}

func healthAnswer(data *Data, now time.Time) string {
	summary := analysis.Summarize(data.Transactions, now)

	health := "🟢 Boa"
	switch {
	case summary.SavingsRate < 10:
		health = "🔴 Precisa melhorar"
	case summary.SavingsRate < 20:
		health = "🟡 Regular"
	}

	closing := "⚠️ Tente reduzir gastos para poupar mais."
	if summary.SavingsRate >= 20 {
		closing = "✅ Parabéns! Você está no caminho certo!"
	}

	return fmt.Sprintf(
		"💚 Análise de Saúde Financeira:\n\n"+
			"Status: %s\n\n"+
			"📊 Resumo:\n"+
			"• Receitas: %s\n"+
			"• Despesas: %s\n"+
			"• Saldo: %s\n"+
			"• Taxa de poupança: %.1f%%\n\n%s",
		health,
		models.BRL(summary.IncomePaid),
		models.BRL(summary.ExpensePaid),
		models.BRL(summary.Balance),
		summary.SavingsRate,
		closing,
	)
}

func categoryAnswer(data *Data, now time.Time) string {
	summary := analysis.Summarize(data.Transactions, now)
	return "📊 Ranking de gastos por categoria:\n\n" +
		categoryLines(summary.TopCategories(analysis.TopCategoryCount), summary.ExpensePaid)
}

// categoryLines renders the numbered ranking. When totalExpenses is
// non-zero each line also carries the category's share of it.
func categoryLines(categories []models.CategoryTotal, totalExpenses float64) string {
	lines := make([]string, 0, len(categories))
	for i, c := range categories {
		if totalExpenses > 0 {
			share := c.Value / totalExpenses * 100
			lines = append(lines, fmt.Sprintf("%d. %s: %s (%.0f%%)", i+1, c.Name, models.BRL(c.Value), share))
		} else {
			lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, c.Name, models.BRL(c.Value)))
		}
	}
	return strings.Join(lines, "\n")
}

func investmentAnswer(data *Data, now time.Time) string {
	summary := analysis.Summarize(data.Transactions, now)

	suggestion := "⚠️ Foque primeiro em aumentar sua poupança mensal."
	if summary.Balance > 500 {
		suggestion = "✅ Você tem condições de investir este mês!\n" +
			"• Tesouro Direto (baixo risco)\n" +
			"• CDB (renda fixa)\n" +
			"• Fundos de investimento"
	}

	return fmt.Sprintf(
		"💎 Análise de Investimentos:\n\n"+
			"• Total investido: %s\n"+
			"• Disponível para investir: %s\n\n"+
			"💡 Sugestões:\n%s",
		models.BRL(summary.TotalInvested),
		models.BRL(summary.Balance),
		suggestion,
	)
}

func dreamsAnswer(data *Data) string {
	if len(data.Dreams) == 0 {
		return "✨ Você ainda não cadastrou nenhum sonho!\n\n" +
			`Vá na aba "Metas & Sonhos" para começar a planejar seus objetivos.`
	}

	var b strings.Builder
	b.WriteString("✨ Seus sonhos e metas:\n\n")
	for i, dream := range data.Dreams {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s\n   %.0f%% completo (%s de %s)",
			i+1, dream.Name, dream.Progress(), models.BRL(dream.Current), models.BRL(dream.Target))
	}
	return b.String()
}

func helpAnswer() string {
	return "🤔 Desculpe, não entendi sua pergunta.\n\n" +
		"Tente perguntar sobre:\n" +
		"• \"Quanto gastei este mês?\"\n" +
		"• \"Quanto gastei em janeiro?\"\n" +
		"• \"Como posso economizar?\"\n" +
		"• \"Analise minha saúde financeira\"\n" +
		"• \"Como está a Jornada 100k?\"\n" +
		"• \"Como está minha aposentadoria?\"\n" +
		"• \"Quais são meus sonhos?\""
}

var monthNamesPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func monthYearPTBR(t time.Time) string {
	return fmt.Sprintf("%s de %d", monthNamesPT[t.Month()-1], t.Year())
}
