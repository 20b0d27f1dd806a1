// Package insights applies a fixed battery of threshold rules to the
// aggregated metrics and produces ranked, human-readable records.
package insights

import (
	"fmt"
	"math"
	"time"

	"financas/internal/models"
	"financas/internal/services/projection"
)

// Snapshot bundles everything the rule battery looks at
type Snapshot struct {
	Summary          *models.MonthSummary
	PreviousExpenses float64 // paid expenses of the month before
	Dreams           []models.Dream
	Journey          *models.Journey
	Retirement       *models.RetirementPlan
	Now              time.Time
}

// Generate evaluates the rules in fixed priority order. Each rule emits at
// most one insight (per dream for the dream rule); thresholds are strict
// as written: 10% is not "low", 20% is "excellent".
func Generate(s *Snapshot) []models.Insight {
	var out []models.Insight

	out = append(out, savingsRateInsight(s.Summary))

	if top := s.Summary.TopCategory(); top != nil && s.Summary.ExpensePaid > 0 {
		share := top.Value / s.Summary.ExpensePaid * 100
		if share > 40 {
			out = append(out, models.Insight{
				Type:    models.InsightWarning,
				Title:   fmt.Sprintf("📊 %s consome %.0f%% do orçamento", top.Name, share),
				Message: fmt.Sprintf("Você gastou %s em %s este mês.", models.BRL(top.Value), top.Name),
				Action:  "Verifique se há oportunidades de economia nesta categoria.",
			})
		}
	}

	if s.PreviousExpenses > 0 {
		diff := s.Summary.ExpensePaid - s.PreviousExpenses
		change := diff / s.PreviousExpenses * 100

		if change > 15 {
			out = append(out, models.Insight{
				Type:    models.InsightAlert,
				Title:   "📈 Gastos aumentaram",
				Message: fmt.Sprintf("Seus gastos subiram %.0f%% em relação ao mês passado (+%s).", change, models.BRL(diff)),
				Action:  "Revise suas transações e identifique o que mudou.",
			})
		} else if change < -10 {
			out = append(out, models.Insight{
				Type:    models.InsightSuccess,
				Title:   "📉 Economia em alta!",
				Message: fmt.Sprintf("Você economizou %.0f%% em relação ao mês passado (-%s)!", math.Abs(change), models.BRL(math.Abs(diff))),
			})
		}
	}

	if s.Summary.TotalInvested > 0 {
		out = append(out, models.Insight{
			Type:    models.InsightSuccess,
			Title:   "💎 Você tem investimentos!",
			Message: fmt.Sprintf("Total investido: %s", models.BRL(s.Summary.TotalInvested)),
			Action:  "Continue investindo mensalmente para alcançar seus objetivos.",
		})
	} else if s.Summary.Balance > 500 {
		out = append(out, models.Insight{
			Type:    models.InsightTip,
			Title:   "💡 Oportunidade de investimento",
			Message: fmt.Sprintf("Com %s de sobra este mês, considere investir!", models.BRL(s.Summary.Balance)),
			Action:  "Comece com Tesouro Direto ou CDB - investimentos seguros e rentáveis.",
		})
	}

	for _, dream := range s.Dreams {
		if insight := dreamInsight(dream, s.Summary.Balance, s.Now); insight != nil {
			out = append(out, *insight)
		}
	}

	if s.Journey != nil {
		status := projection.EvaluateJourney(s.Journey, s.Now)
		if status.Progress > 0 {
			out = append(out, models.Insight{
				Type:    models.InsightInfo,
				Title:   "🚀 Jornada 100k",
				Message: fmt.Sprintf("Você já acumulou %s (%.1f%%)", models.BRL(status.Accumulated), status.Progress),
				Action:  "Continue depositando mensalmente para alcançar os R$ 100.000!",
			})
		}
	}

	if s.Retirement != nil && len(s.Retirement.Contributions) > 0 {
		out = append(out, models.Insight{
			Type:    models.InsightSuccess,
			Title:   "🎯 Aposentadoria",
			Message: fmt.Sprintf("Você já contribuiu com %s para sua aposentadoria!", models.BRL(s.Retirement.TotalContributed())),
			Action:  "Continue aportando mensalmente para garantir seu futuro.",
		})
	}

	return out
}

func savingsRateInsight(summary *models.MonthSummary) models.Insight {
	rate := summary.SavingsRate
	balance := models.BRL(summary.Balance)

	switch {
	case rate < 10:
		return models.Insight{
			Type:    models.InsightAlert,
			Title:   "⚠️ Taxa de poupança baixa",
			Message: fmt.Sprintf("Você está poupando apenas %.1f%% da sua renda (%s). O ideal é poupar pelo menos 20%%.", rate, balance),
			Action:  "Tente reduzir gastos em categorias não essenciais como Lazer e Compras.",
		}
	case rate >= 20:
		return models.Insight{
			Type:    models.InsightSuccess,
			Title:   "🎉 Excelente taxa de poupança!",
			Message: fmt.Sprintf("Parabéns! Você está poupando %.1f%% da sua renda (%s).", rate, balance),
			Action:  "Continue assim e considere aumentar seus investimentos!",
		}
	default:
		return models.Insight{
			Type:    models.InsightInfo,
			Title:   "💰 Taxa de poupança moderada",
			Message: fmt.Sprintf("Você está poupando %.1f%% da sua renda (%s).", rate, balance),
			Action:  "Tente alcançar 20% para ter uma reserva mais robusta.",
		}
	}
}

// dreamInsight analyzes a single dream. Only dreams with a deadline get
// one; "challenging" takes priority over "almost there".
func dreamInsight(dream models.Dream, balance float64, now time.Time) *models.Insight {
	if dream.Deadline == nil {
		return nil
	}

	remaining := dream.Remaining()
	monthsRemaining := projection.WholeMonthsBetween(now, *dream.Deadline)

	monthlyNeeded := remaining
	if monthsRemaining > 0 {
		monthlyNeeded = remaining / float64(monthsRemaining)
	}

	if monthlyNeeded > balance && balance > 0 {
		return &models.Insight{
			Type:    models.InsightWarning,
			Title:   fmt.Sprintf("🎯 %s: Meta desafiadora", dream.Name),
			Message: fmt.Sprintf("Você precisa poupar %s/mês, mas está poupando %s.", models.BRL(monthlyNeeded), models.BRL(balance)),
			Action:  fmt.Sprintf("Aumente sua poupança em %s/mês ou ajuste o prazo.", models.BRL(monthlyNeeded-balance)),
		}
	}

	if dream.Progress() >= 75 {
		return &models.Insight{
			Type:    models.InsightSuccess,
			Title:   fmt.Sprintf("🚀 %s: Quase lá!", dream.Name),
			Message: fmt.Sprintf("Você já conquistou %.0f%% do seu sonho!", dream.Progress()),
			Action:  fmt.Sprintf("Faltam apenas %s", models.BRL(remaining)),
		}
	}

	return nil
}

// Digest returns at most the first three insights, for the welcome message
func Digest(all []models.Insight) []models.Insight {
	if len(all) > 3 {
		return all[:3]
	}
	return all
}

// SavingsTips returns the first three insights carrying a recommended
// action, in generation order
func SavingsTips(all []models.Insight) []models.Insight {
	var tips []models.Insight
	for _, insight := range all {
		if insight.Action == "" {
			continue
		}
		tips = append(tips, insight)
		if len(tips) == 3 {
			break
		}
	}
	return tips
}
