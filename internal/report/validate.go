package report

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/BerylCAtieno/nutrigen-agent/internal/models"
	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
)

// stripFences removes a surrounding markdown code block, if the model added
// one despite JSON mode. Any language tag after the opening fence is dropped.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		text = strings.TrimLeftFunc(rest, isTagRune)
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func isTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '+'
}

// parse strips fences from the backend text and decodes it into a generic
// JSON value. It returns the body that was decoded.
func parse(text string) ([]byte, any, error) {
	body := []byte(stripFences(text))
	if len(body) == 0 {
		return nil, nil, &Error{Kind: KindParse, Msg: "empty response"}
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, nil, &Error{Kind: KindParse, Msg: "response is not valid JSON", Err: err}
	}
	return body, v, nil
}

// conform checks v against the descriptor f. Unknown properties are
// ignored.
func conform(path string, f *prompt.Field, v any) error {
	if v == nil {
		return newError(KindSchema, path, "expected %s, got null", f.Type)
	}

	switch f.Type {
	case prompt.TypeString:
		s, ok := v.(string)
		if !ok {
			return typeMismatch(path, f.Type, v)
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
			return newError(KindSchema, path, "%q is not one of %s", s, strings.Join(f.Enum, ", "))
		}
	case prompt.TypeNumber:
		if _, ok := v.(float64); !ok {
			return typeMismatch(path, f.Type, v)
		}
	case prompt.TypeInteger:
		n, ok := v.(float64)
		if !ok {
			return typeMismatch(path, f.Type, v)
		}
		if n != math.Trunc(n) {
			return newError(KindSchema, path, "expected integer, got %v", n)
		}
	case prompt.TypeArray:
		items, ok := v.([]any)
		if !ok {
			return typeMismatch(path, f.Type, v)
		}
		for i, item := range items {
			if err := conform(fmt.Sprintf("%s[%d]", path, i), f.Items, item); err != nil {
				return err
			}
		}
	case prompt.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return typeMismatch(path, f.Type, v)
		}
		for _, p := range f.Properties {
			child := join(path, p.Name)
			pv, present := obj[p.Name]
			if !present {
				if p.Required {
					return newError(KindSchema, child, "required field missing")
				}
				continue
			}
			if err := conform(child, p, pv); err != nil {
				return err
			}
		}
	default:
		return newError(KindSchema, path, "unsupported schema type %q", f.Type)
	}
	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func typeMismatch(path string, want prompt.Type, v any) error {
	return newError(KindSchema, path, "expected %s, got %s", want, jsonType(v))
}

func jsonType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// checkStructure enforces the constraints the schema language cannot
// express: non-empty recommendations and the chart dataset contract.
func checkStructure(r *models.Report) error {
	lists := []struct {
		path  string
		items []string
	}{
		{"nutritionalAnalysis.recommendations", r.NutritionalAnalysis.Recommendations},
		{"physicalAnalysis.recommendations", r.PhysicalAnalysis.Recommendations},
		{"goalsAndMotivation.recommendations", r.GoalsAndMotivation.Recommendations},
	}
	for _, l := range lists {
		if len(l.items) == 0 {
			return newError(KindSchema, l.path, "must contain at least one item")
		}
	}

	wc := r.Charts.WeightComparison
	if len(wc) != 2 {
		return newError(KindSchema, "charts.weightComparison", "expected exactly 2 points, got %d", len(wc))
	}
	if strings.TrimSpace(wc[0].Name) == "" || strings.TrimSpace(wc[1].Name) == "" {
		return newError(KindSchema, "charts.weightComparison", "points must be labelled")
	}
	if wc[0].Name == wc[1].Name {
		return newError(KindSchema, "charts.weightComparison", "labels must be distinct, both are %q", wc[0].Name)
	}
	if wc[0].Value != r.ProfileSummary.CurrentWeight {
		return newError(KindSchema, "charts.weightComparison[0].value",
			"expected current weight %v, got %v", r.ProfileSummary.CurrentWeight, wc[0].Value)
	}
	if wc[1].Value != r.ProfileSummary.TargetWeight {
		return newError(KindSchema, "charts.weightComparison[1].value",
			"expected target weight %v, got %v", r.ProfileSummary.TargetWeight, wc[1].Value)
	}

	ad := r.Charts.ActivityDistribution
	if len(ad) == 0 {
		return newError(KindSchema, "charts.activityDistribution", "must contain at least one point")
	}
	for i, p := range ad {
		if p.Value < 0 {
			return newError(KindSchema, fmt.Sprintf("charts.activityDistribution[%d].value", i),
				"must be non-negative, got %v", p.Value)
		}
	}
	return nil
}
