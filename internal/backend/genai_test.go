package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
	"github.com/BerylCAtieno/nutrigen-agent/internal/report"
)

func TestGenAISchemaKeepsOrder(t *testing.T) {
	s := genaiSchema(prompt.ReportSchema().Root)
	require.NotNil(t, s)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, s.Required, s.PropertyOrdering)

	ps := s.Properties["profileSummary"]
	assert.Equal(t, []string{
		"name", "age", "sex", "height", "currentWeight", "targetWeight", "bmi", "bmiCategory",
	}, ps.PropertyOrdering)
	assert.Equal(t, genai.TypeString, ps.Properties["height"].Type)
	assert.Equal(t, prompt.BMICategories(), ps.Properties["bmiCategory"].Enum)

	steps := s.Properties["actionPlan"].Properties["exerciseSteps"]
	assert.Equal(t, genai.TypeArray, steps.Type)
	assert.Equal(t, genai.TypeString, steps.Items.Type)
}

func TestGenAIGenerateConfig(t *testing.T) {
	c := &GenAIClient{model: "gemini-2.5-flash", temperature: 0.7, topP: 0.95, maxOutputTokens: 8192}
	text, schema := prompt.Compile(prompt.DefaultGlossary(), prompt.SampleSubmission)

	gc := c.generateConfig(report.Request{Prompt: text, Schema: schema, Locale: prompt.Locale, JSONMode: true})
	assert.Equal(t, "application/json", gc.ResponseMIMEType)
	require.NotNil(t, gc.ResponseSchema)
	assert.Len(t, gc.ResponseSchema.Properties, 8)
	require.NotNil(t, gc.Temperature)
	assert.Equal(t, float32(0.7), *gc.Temperature)
	assert.Equal(t, int32(8192), gc.MaxOutputTokens)
	require.NotNil(t, gc.SystemInstruction)
	require.NotEmpty(t, gc.SystemInstruction.Parts)
	assert.Contains(t, gc.SystemInstruction.Parts[0].Text, "pt-BR")

	plain := c.generateConfig(report.Request{Prompt: text})
	assert.Empty(t, plain.ResponseMIMEType)
	assert.Nil(t, plain.ResponseSchema)
	assert.Nil(t, plain.SystemInstruction)
	assert.Equal(t, "genai:gemini-2.5-flash", c.Name())
}
