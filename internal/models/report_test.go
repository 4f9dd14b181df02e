package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRows(t *testing.T) {
	p := CustomPreferences{
		LikedFoods:   []string{"Churrasco", "Massas"},
		FoodsToAvoid: []string{"Doces", "Refrigerantes", "Frituras"},
	}

	assert.Equal(t, []PreferenceRow{
		{Liked: "Churrasco", Avoid: "Doces"},
		{Liked: "Massas", Avoid: "Refrigerantes"},
		{Liked: "", Avoid: "Frituras"},
	}, p.Rows())

	assert.Empty(t, CustomPreferences{}.Rows())
}

func TestNumbered(t *testing.T) {
	assert.Equal(t, []string{"1. Beber água", "2. Caminhar"}, Numbered([]string{" Beber água", "Caminhar "}))
	assert.Empty(t, Numbered(nil))
}

func TestReportJSONKeys(t *testing.T) {
	r := Report{
		ProfileSummary: ProfileSummary{CurrentWeight: 95, BMICategory: "Sobrepeso"},
		Charts: ChartData{
			WeightComparison: []ChartPoint{{Name: "Peso Atual", Value: 95}},
		},
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "profileSummary")
	assert.Contains(t, m, "charts")
	assert.NotContains(t, m, "warnings")

	ps := m["profileSummary"].(map[string]any)
	assert.Equal(t, 95.0, ps["currentWeight"])
	assert.Equal(t, "Sobrepeso", ps["bmiCategory"])
}
