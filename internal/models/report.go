package models

import (
	"fmt"
	"strings"
)

// Report is the full intake report returned by the generation pipeline.
type Report struct {
	ProfileSummary      ProfileSummary      `json:"profileSummary"`
	NutritionalAnalysis NutritionalAnalysis `json:"nutritionalAnalysis"`
	PhysicalAnalysis    PhysicalAnalysis    `json:"physicalAnalysis"`
	GoalsAndMotivation  GoalsAndMotivation  `json:"goalsAndMotivation"`
	CustomPreferences   CustomPreferences   `json:"customPreferences"`
	ActionPlan          ActionPlan          `json:"actionPlan"`
	Conclusion          Conclusion          `json:"conclusion"`
	Charts              ChartData           `json:"charts"`

	// Warnings are attached locally and never requested from the model.
	Warnings []string `json:"warnings,omitempty"`
}

type ProfileSummary struct {
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	Height        string  `json:"height"`
	CurrentWeight float64 `json:"currentWeight"`
	TargetWeight  float64 `json:"targetWeight"`
	BMI           float64 `json:"bmi"`
	BMICategory   string  `json:"bmiCategory"`
}

type NutritionalAnalysis struct {
	Summary         string   `json:"summary"`
	DailyMeals      int      `json:"dailyMeals"`
	WaterIntake     string   `json:"waterIntake"`
	Recommendations []string `json:"recommendations"`
}

type PhysicalAnalysis struct {
	ActivityLevel       string   `json:"activityLevel"`
	PreferredActivities string   `json:"preferredActivities"`
	SleepHours          float64  `json:"sleepHours"`
	Recommendations     []string `json:"recommendations"`
}

type GoalsAndMotivation struct {
	MainChallenge   string   `json:"mainChallenge"`
	MainMotivation  string   `json:"mainMotivation"`
	Recommendations []string `json:"recommendations"`
}

type CustomPreferences struct {
	LikedFoods   []string `json:"likedFoods"`
	FoodsToAvoid []string `json:"foodsToAvoid"`
}

// PreferenceRow is one line of the liked/avoid table.
type PreferenceRow struct {
	Liked string `json:"liked"`
	Avoid string `json:"avoid"`
}

// Rows pairs liked foods with foods to avoid by position. The shorter list
// is padded with empty cells so every row has both columns.
func (p CustomPreferences) Rows() []PreferenceRow {
	n := len(p.LikedFoods)
	if len(p.FoodsToAvoid) > n {
		n = len(p.FoodsToAvoid)
	}

	rows := make([]PreferenceRow, n)
	for i := range rows {
		if i < len(p.LikedFoods) {
			rows[i].Liked = p.LikedFoods[i]
		}
		if i < len(p.FoodsToAvoid) {
			rows[i].Avoid = p.FoodsToAvoid[i]
		}
	}
	return rows
}

type ActionPlan struct {
	Title          string   `json:"title"`
	Introduction   string   `json:"introduction"`
	DietarySteps   []string `json:"dietarySteps"`
	ExerciseSteps  []string `json:"exerciseSteps"`
	LifestyleSteps []string `json:"lifestyleSteps"`
}

// Numbered prefixes each step with its 1-based position.
func Numbered(steps []string) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(s))
	}
	return out
}

type Conclusion struct {
	FinalMessage string `json:"finalMessage"`
}

// ChartPoint is a single labelled value in a chart series.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type ChartData struct {
	WeightComparison     []ChartPoint `json:"weightComparison"`
	ActivityDistribution []ChartPoint `json:"activityDistribution"`
}
