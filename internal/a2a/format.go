package a2a

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/nutrigen-agent/internal/models"
)

// formatReport renders a report as markdown for chat-style A2A clients.
func formatReport(r *models.Report) string {
	var b strings.Builder
	ps := r.ProfileSummary

	fmt.Fprintf(&b, "# %s\n\n", orDefault(r.ActionPlan.Title, "Relatório de Saúde e Fitness"))

	b.WriteString("## Resumo do Perfil\n")
	fmt.Fprintf(&b, "- Nome: %s\n", ps.Name)
	fmt.Fprintf(&b, "- Idade: %d anos\n", ps.Age)
	fmt.Fprintf(&b, "- Sexo: %s\n", ps.Sex)
	fmt.Fprintf(&b, "- Altura: %s\n", ps.Height)
	fmt.Fprintf(&b, "- Peso atual: %s kg\n", num(ps.CurrentWeight))
	fmt.Fprintf(&b, "- Peso meta: %s kg\n", num(ps.TargetWeight))
	fmt.Fprintf(&b, "- IMC: %.1f (%s)\n", ps.BMI, ps.BMICategory)

	na := r.NutritionalAnalysis
	b.WriteString("\n## Análise Nutricional\n")
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(na.Summary))
	fmt.Fprintf(&b, "- Refeições por dia: %d\n", na.DailyMeals)
	fmt.Fprintf(&b, "- Consumo de água: %s\n", na.WaterIntake)
	writeList(&b, "Recomendações", na.Recommendations)

	pa := r.PhysicalAnalysis
	b.WriteString("\n## Análise Física\n")
	fmt.Fprintf(&b, "- Nível de atividade: %s\n", pa.ActivityLevel)
	fmt.Fprintf(&b, "- Atividades preferidas: %s\n", pa.PreferredActivities)
	fmt.Fprintf(&b, "- Horas de sono: %s\n", num(pa.SleepHours))
	writeList(&b, "Recomendações", pa.Recommendations)

	gm := r.GoalsAndMotivation
	b.WriteString("\n## Metas e Motivação\n")
	fmt.Fprintf(&b, "- Maior desafio: %s\n", gm.MainChallenge)
	fmt.Fprintf(&b, "- Motivação principal: %s\n", gm.MainMotivation)
	writeList(&b, "Recomendações", gm.Recommendations)

	if rows := r.CustomPreferences.Rows(); len(rows) > 0 {
		b.WriteString("\n## Preferências Alimentares\n")
		b.WriteString("| Alimentos que gosta | Alimentos a evitar |\n")
		b.WriteString("|---|---|\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "| %s | %s |\n", cell(row.Liked), cell(row.Avoid))
		}
	}

	ap := r.ActionPlan
	b.WriteString("\n## Plano de Ação\n")
	if intro := strings.TrimSpace(ap.Introduction); intro != "" {
		fmt.Fprintf(&b, "%s\n", intro)
	}
	writeSteps(&b, "Alimentação", ap.DietarySteps)
	writeSteps(&b, "Exercícios", ap.ExerciseSteps)
	writeSteps(&b, "Estilo de vida", ap.LifestyleSteps)

	b.WriteString("\n## Gráficos\n")
	writeSeries(&b, "Comparativo de peso", r.Charts.WeightComparison, " kg")
	writeSeries(&b, "Distribuição de atividade", r.Charts.ActivityDistribution, "")

	if len(r.Warnings) > 0 {
		writeList(&b, "Avisos", r.Warnings)
	}

	if msg := strings.TrimSpace(r.Conclusion.FinalMessage); msg != "" {
		fmt.Fprintf(&b, "\n## Conclusão\n%s\n", msg)
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", strings.TrimSpace(it))
	}
}

func writeSteps(b *strings.Builder, title string, steps []string) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", title)
	for _, s := range models.Numbered(steps) {
		fmt.Fprintf(b, "%s\n", s)
	}
}

func writeSeries(b *strings.Builder, title string, points []models.ChartPoint, unit string) {
	fmt.Fprintf(b, "\n**%s:**\n", title)
	for _, p := range points {
		fmt.Fprintf(b, "- %s: %s%s\n", p.Name, num(p.Value), unit)
	}
}

// num prints whole numbers without decimals.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "/")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
