package prompt

import (
	"strings"
)

// Type is a primitive type in the report schema.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Field describes one node of the report schema. Objects list their
// properties in a fixed order; arrays describe their element in Items.
type Field struct {
	Name       string   `json:"name,omitempty"`
	Type       Type     `json:"type"`
	Required   bool     `json:"required,omitempty"`
	Enum       []string `json:"enum,omitempty"`
	Items      *Field   `json:"items,omitempty"`
	Properties []*Field `json:"properties,omitempty"`
}

// Schema is the root of a report descriptor. It is shared by the prompt
// compiler, the backends (which translate it to their SDK types) and the
// response validator.
type Schema struct {
	Root *Field `json:"root"`
}

// RequiredNames returns the names of the required properties of f, in
// declaration order.
func (f *Field) RequiredNames() []string {
	var names []string
	for _, p := range f.Properties {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Property returns the named property of an object field.
func (f *Field) Property(name string) (*Field, bool) {
	for _, p := range f.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Lookup resolves a dotted path such as "profileSummary.bmi". Array
// elements are addressed with "[]", e.g. "charts.weightComparison[].name".
func (s *Schema) Lookup(path string) (*Field, bool) {
	f := s.Root
	if path == "" {
		return f, f != nil
	}
	for _, part := range strings.Split(path, ".") {
		if f == nil {
			return nil, false
		}
		name, elem := strings.CutSuffix(part, "[]")
		var ok bool
		if f, ok = f.Property(name); !ok {
			return nil, false
		}
		if elem {
			if f.Items == nil {
				return nil, false
			}
			f = f.Items
		}
	}
	return f, f != nil
}

// BMI category labels, in ascending BMI order.
const (
	CategoryUnderweight = "Abaixo do peso"
	CategoryNormal      = "Peso normal"
	CategoryOverweight  = "Sobrepeso"
	CategoryObesityI    = "Obesidade Grau I"
	CategoryObesityII   = "Obesidade Grau II"
	CategoryObesityIII  = "Obesidade Grau III"
)

// BMICategories lists the six canonical labels.
func BMICategories() []string {
	return []string{
		CategoryUnderweight,
		CategoryNormal,
		CategoryOverweight,
		CategoryObesityI,
		CategoryObesityII,
		CategoryObesityIII,
	}
}

func str(name string) *Field { return &Field{Name: name, Type: TypeString, Required: true} }
func integer(name string) *Field {
	return &Field{Name: name, Type: TypeInteger, Required: true}
}
func number(name string) *Field { return &Field{Name: name, Type: TypeNumber, Required: true} }

func strList(name string) *Field {
	return &Field{Name: name, Type: TypeArray, Required: true, Items: &Field{Type: TypeString}}
}

func object(name string, props ...*Field) *Field {
	return &Field{Name: name, Type: TypeObject, Required: name != "", Properties: props}
}

func chartSeries(name string) *Field {
	return &Field{
		Name:     name,
		Type:     TypeArray,
		Required: true,
		Items:    object("", str("name"), number("value")),
	}
}

// ReportSchema builds the descriptor of the structured report. Every
// leaf is required and no list declares a minimum length.
func ReportSchema() *Schema {
	bmiCategory := str("bmiCategory")
	bmiCategory.Enum = BMICategories()

	return &Schema{Root: object("",
		object("profileSummary",
			str("name"),
			integer("age"),
			str("sex"),
			str("height"),
			number("currentWeight"),
			number("targetWeight"),
			number("bmi"),
			bmiCategory,
		),
		object("nutritionalAnalysis",
			str("summary"),
			integer("dailyMeals"),
			str("waterIntake"),
			strList("recommendations"),
		),
		object("physicalAnalysis",
			str("activityLevel"),
			str("preferredActivities"),
			number("sleepHours"),
			strList("recommendations"),
		),
		object("goalsAndMotivation",
			str("mainChallenge"),
			str("mainMotivation"),
			strList("recommendations"),
		),
		object("customPreferences",
			strList("likedFoods"),
			strList("foodsToAvoid"),
		),
		object("actionPlan",
			str("title"),
			str("introduction"),
			strList("dietarySteps"),
			strList("exerciseSteps"),
			strList("lifestyleSteps"),
		),
		object("conclusion",
			str("finalMessage"),
		),
		object("charts",
			chartSeries("weightComparison"),
			chartSeries("activityDistribution"),
		),
	)}
}
