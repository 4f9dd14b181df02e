package report

import (
	"fmt"
	"slices"

	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
)

// Policy decides what happens when the returned BMI and its category
// disagree.
type Policy int

const (
	// PolicyStrict rejects the report with a KindSemantic error.
	PolicyStrict Policy = iota
	// PolicyAdvisory keeps the report and attaches a warning.
	PolicyAdvisory
)

func (p Policy) String() string {
	if p == PolicyAdvisory {
		return "advisory"
	}
	return "strict"
}

// ParsePolicy accepts "strict" or "advisory".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "strict", "":
		return PolicyStrict, nil
	case "advisory":
		return PolicyAdvisory, nil
	}
	return PolicyStrict, fmt.Errorf("unknown BMI policy %q (valid: strict, advisory)", s)
}

// CategoryFor classifies a BMI value into one of the six canonical labels.
func CategoryFor(bmi float64) string {
	switch {
	case bmi < 18.5:
		return prompt.CategoryUnderweight
	case bmi < 25.0:
		return prompt.CategoryNormal
	case bmi < 30.0:
		return prompt.CategoryOverweight
	case bmi < 35.0:
		return prompt.CategoryObesityI
	case bmi < 40.0:
		return prompt.CategoryObesityII
	default:
		return prompt.CategoryObesityIII
	}
}

// IsCategory reports whether label is one of the canonical BMI labels.
func IsCategory(label string) bool {
	return slices.Contains(prompt.BMICategories(), label)
}

// checkBMI returns a non-nil error when category does not match bmi.
func checkBMI(bmi float64, category string) error {
	if want := CategoryFor(bmi); category != want {
		return newError(KindSemantic, "profileSummary.bmiCategory",
			"bmi %.1f is %q, got %q", bmi, want, category)
	}
	return nil
}
