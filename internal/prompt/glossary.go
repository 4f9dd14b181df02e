package prompt

import (
	"fmt"
	"strings"
)

// Glossary is the ordered list of questionnaire questions. Position i holds
// the question answered by line i of a raw submission.
type Glossary []string

// questions is the official question order of the intake form. It is never
// mutated after package initialization.
var questions = Glossary{
	"Carimbo de data/hora",
	"Nome completo",
	"Idade",
	"Sexo",
	"Altura",
	"Peso atual",
	"Peso desejado ou meta",
	"Você possui alguma condição médica relevante?",
	"Está fazendo uso de algum medicamento atualmente?",
	"Já realizou algum acompanhamento nutricional ou de emagrecimento antes?",
	"Como você descreveria sua alimentação atual?",
	"Quantas refeições você faz por dia em média?",
	"Você tem restrições alimentares?",
	"Consumo de água diário",
	"Qual seu nível de atividade física atual?",
	"Que tipo de atividade física você prefere ou pode praticar?",
	"Quantas horas de sono você tem em média por noite?",
	"Qual seu maior desafio para emagrecer?",
	"Qual é a sua motivação principal para emagrecer?",
	"Qual formato de acompanhamento você prefere receber?",
	"Qual nível de personalização você deseja para o seu plano?",
	"Quais alimentos você gosta muito e não quer cortar?",
	"Quais alimentos você tem dificuldade de evitar?",
	"Você tem alguma alergia alimentar?",
	"Você possui algum equipamento ou espaço em casa para treinar?",
	"Qual o seu número de WhatsApp (com DDD)?",
}

// Positions of the answers the rest of the service looks at directly.
const (
	QTimestamp = iota
	QName
	QAge
	QSex
	QHeight
	QCurrentWeight
	QTargetWeight
)

// DefaultGlossary returns a copy of the official 26-question order.
func DefaultGlossary() Glossary {
	out := make(Glossary, len(questions))
	copy(out, questions)
	return out
}

// Len reports the number of questions.
func (g Glossary) Len() int { return len(g) }

// Numbered renders the glossary one question per line, "1. ..." first.
func (g Glossary) Numbered() string {
	lines := make([]string, len(g))
	for i, q := range g {
		lines[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	return strings.Join(lines, "\n")
}
