package safety

import "strings"

// Severity ranks the clinical risk of a warning. High-severity warnings
// flip the overall safety gate; medium and low are advisory only.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank returns the sort rank for a severity, highest risk first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	}
	return 3
}

// WarningType identifies which rule category produced a warning.
type WarningType string

const (
	WarningInteraction      WarningType = "interaction"
	WarningContraindication WarningType = "contraindication"
	WarningAge              WarningType = "age_warning"
	WarningAllergy          WarningType = "allergy_warning"
)

// InteractionRule describes a pairwise hazard between two medicines. The
// medicine pair itself is the key under RuleSet.Interactions.
type InteractionRule struct {
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// AgeRule is an age band outside which a medicine warrants a warning. The
// seeded defaults only ever set MinAge; MaxAge is honored when present.
type AgeRule struct {
	MinAge  *int   `json:"min_age,omitempty"`
	MaxAge  *int   `json:"max_age,omitempty"`
	Warning string `json:"warning"`
}

// RuleSet bundles the four rule tables. Its field layout doubles as the
// on-disk JSON document, so a loaded file round-trips unchanged.
//
// A RuleSet is immutable during evaluation: nothing in this package writes
// to it after load.
type RuleSet struct {
	Interactions      map[string]map[string]InteractionRule `json:"interactions"`
	Contraindications map[string][]string                   `json:"contraindications"`
	AgeWarnings       map[string]AgeRule                    `json:"age_warnings"`
	AllergyWarnings   map[string][]string                   `json:"allergy_warnings"`
}

// NewRuleSet returns an empty rule set with all four tables allocated.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		Interactions:      make(map[string]map[string]InteractionRule),
		Contraindications: make(map[string][]string),
		AgeWarnings:       make(map[string]AgeRule),
		AllergyWarnings:   make(map[string][]string),
	}
}

// InteractionFor returns the interaction rule for a medicine pair, checking
// both orderings. A rule stored under (A,B) is found when queried as (B,A).
// Absence is a normal outcome, reported by the bool.
func (rs *RuleSet) InteractionFor(medA, medB string) (InteractionRule, bool) {
	if inner, ok := rs.Interactions[medA]; ok {
		if rule, ok := inner[medB]; ok {
			return rule, true
		}
	}
	if inner, ok := rs.Interactions[medB]; ok {
		if rule, ok := inner[medA]; ok {
			return rule, true
		}
	}
	return InteractionRule{}, false
}

// ContraindicationsFor returns the conditions that contraindicate a
// medicine. Unknown medicines yield an empty slice.
func (rs *RuleSet) ContraindicationsFor(medicine string) []string {
	return rs.Contraindications[medicine]
}

// AgeRuleFor returns the age rule registered for a medicine, if any.
func (rs *RuleSet) AgeRuleFor(medicine string) (AgeRule, bool) {
	rule, ok := rs.AgeWarnings[medicine]
	return rule, ok
}

// CrossReactiveMedicines returns the medicines that cross-react with the
// named allergy, along with the canonical allergy name from the rule table.
// The allergy name match is case-insensitive; medicine names stay exact.
func (rs *RuleSet) CrossReactiveMedicines(allergy string) (string, []string) {
	for name, medicines := range rs.AllergyWarnings {
		if strings.EqualFold(name, allergy) {
			return name, medicines
		}
	}
	return "", nil
}

// Warning is a single safety finding. The common fields are always set;
// the type-specific fields depend on Type.
type Warning struct {
	Type           WarningType `json:"type"`
	Severity       Severity    `json:"severity"`
	Description    string      `json:"description"`
	Recommendation string      `json:"recommendation"`

	// interaction
	Medicines []string `json:"medicines,omitempty"`
	// contraindication, age_warning, allergy_warning
	Medicine string `json:"medicine,omitempty"`
	// contraindication
	Condition string `json:"condition,omitempty"`
	// age_warning
	PatientAge *int `json:"patient_age,omitempty"`
	// allergy_warning
	Allergy string `json:"allergy,omitempty"`
}

// Profile is the ephemeral patient context for one evaluation. A nil Age
// means unknown and skips the age pass; empty slices narrow the other
// passes to nothing.
type Profile struct {
	Age        *int     `json:"age,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
	Allergies  []string `json:"allergies,omitempty"`
}

// Result is the outcome of one safety evaluation.
type Result struct {
	Warnings      []Warning `json:"warnings"`
	HighRiskCount int       `json:"high_risk_count"`
	TotalWarnings int       `json:"total_warnings"`
	IsSafe        bool      `json:"is_safe"`
}
