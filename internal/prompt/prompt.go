package prompt

import (
	"fmt"
)

// Locale is the only language reports are written in.
const Locale = "pt-BR"

const instructionTemplate = `Você é um especialista de classe mundial em nutrição, saúde e fitness. Sua tarefa é transformar os seguintes dados brutos de um formulário em um RELATÓRIO PREMIUM PROFISSIONAL em formato JSON, seguindo estritamente o schema fornecido.

Os dados brutos seguem esta ordem oficial de perguntas:
%s

Tarefa:
1. Analise os dados brutos do usuário abaixo. Cada linha corresponde, na mesma posição, a uma pergunta da lista acima.
2. Calcule o IMC (Índice de Massa Corporal) usando a fórmula peso(kg) / (altura(m) * altura(m)). Extraia os números de altura e peso para o cálculo. Classifique o IMC em: %s (<18.5), %s (18.5-24.9), %s (25-29.9), %s (30-34.9), %s (35-39.9), %s (>=40).
3. Preencha todos os campos do schema JSON com análises detalhadas, insights profissionais e recomendações personalizadas.
4. Crie dados para os gráficos: 'weightComparison' deve conter exatamente dois objetos, {name: 'Peso Atual', value: peso atual} e {name: 'Peso Meta', value: peso meta}, nesta ordem. 'activityDistribution' deve representar o nível de atividade do usuário com valores não negativos (ex: {name: 'Sedentário', value: 100}).
5. Use uma linguagem clara, profissional, motivadora e empática.
6. O idioma de todo o relatório, incluindo nomes de chaves nos dados do gráfico, deve ser Português do Brasil.

Dados brutos do usuário:
---
%s
---

Gere a resposta JSON completa, sem nenhum texto fora do JSON.`

// Chart labels the model is asked to use for the weight comparison.
const (
	LabelCurrentWeight = "Peso Atual"
	LabelTargetWeight  = "Peso Meta"
)

// Compile builds the instruction prompt and the output schema for one raw
// submission. The raw text is embedded verbatim. Compile does no I/O and
// returns identical output for identical input.
func Compile(g Glossary, raw string) (string, *Schema) {
	c := BMICategories()
	p := fmt.Sprintf(instructionTemplate,
		g.Numbered(),
		c[0], c[1], c[2], c[3], c[4], c[5],
		raw,
	)
	return p, ReportSchema()
}
