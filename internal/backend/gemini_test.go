package backend

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigen-agent/internal/config"
	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(prompt.ReportSchema().Root)
	require.NotNil(t, s)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Len(t, s.Properties, 8)
	assert.Equal(t, []string{
		"profileSummary", "nutritionalAnalysis", "physicalAnalysis", "goalsAndMotivation",
		"customPreferences", "actionPlan", "conclusion", "charts",
	}, s.Required)

	ps := s.Properties["profileSummary"]
	require.NotNil(t, ps)
	assert.Equal(t, genai.TypeInteger, ps.Properties["age"].Type)
	assert.Equal(t, genai.TypeNumber, ps.Properties["bmi"].Type)
	assert.Equal(t, "enum", ps.Properties["bmiCategory"].Format)
	assert.Equal(t, prompt.BMICategories(), ps.Properties["bmiCategory"].Enum)
	assert.Contains(t, ps.Required, "height")

	recs := s.Properties["nutritionalAnalysis"].Properties["recommendations"]
	assert.Equal(t, genai.TypeArray, recs.Type)
	assert.Equal(t, genai.TypeString, recs.Items.Type)

	wc := s.Properties["charts"].Properties["weightComparison"]
	require.NotNil(t, wc.Items)
	assert.Equal(t, genai.TypeObject, wc.Items.Type)
	assert.Equal(t, []string{"name", "value"}, wc.Items.Required)

	assert.Nil(t, geminiSchema(nil))
}

func TestNewRequiresAPIKey(t *testing.T) {
	for _, sdk := range []string{config.SDKGenerativeAI, config.SDKGenAI} {
		_, err := New(context.Background(), config.BackendConfig{SDK: sdk, Model: "gemini-2.5-flash"})
		assert.ErrorIs(t, err, errNoAPIKey, sdk)
	}
}

func TestNewUnknownSDK(t *testing.T) {
	_, err := New(context.Background(), config.BackendConfig{SDK: "openai", APIKey: "k"})
	assert.ErrorContains(t, err, "unknown backend sdk")
}

func TestLocaleDirective(t *testing.T) {
	d := localeDirective("pt-BR", true)
	assert.Contains(t, d, "Português do Brasil (pt-BR)")
	assert.Contains(t, d, "JSON")

	assert.NotContains(t, localeDirective("pt-BR", false), "JSON")
}
