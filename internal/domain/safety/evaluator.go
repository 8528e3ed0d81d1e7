package safety

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Evaluator runs the four rule categories against a medicine list and a
// patient profile. It holds a read-only rule snapshot and performs no I/O,
// so a single evaluator is safe for concurrent use.
type Evaluator struct {
	rules *RuleSet
}

// NewEvaluator creates an evaluator over the given rule snapshot.
func NewEvaluator(rules *RuleSet) *Evaluator {
	return &Evaluator{rules: rules}
}

// Evaluate produces the ranked warning list and summary counts for a
// medicine list and patient profile.
//
// The medicine list is walked positionally: duplicate entries are not
// deduplicated, so a medicine appearing on two prescription lines is
// checked (and warned about) once per line. Each pass is skipped entirely
// when its patient input is absent; unknown names match nothing and are
// never an error.
func (e *Evaluator) Evaluate(medicines []string, profile Profile) Result {
	var warnings []Warning

	// Pairwise interactions over unordered positional pairs.
	for i := 0; i < len(medicines); i++ {
		for j := i + 1; j < len(medicines); j++ {
			rule, ok := e.rules.InteractionFor(medicines[i], medicines[j])
			if !ok {
				continue
			}
			warnings = append(warnings, Warning{
				Type:           WarningInteraction,
				Severity:       rule.Severity,
				Medicines:      []string{medicines[i], medicines[j]},
				Description:    rule.Description,
				Recommendation: rule.Recommendation,
			})
		}
	}

	for _, medicine := range medicines {
		warnings = append(warnings, e.contraindicationWarnings(medicine, profile.Conditions)...)
	}
	for _, medicine := range medicines {
		warnings = append(warnings, e.ageWarnings(medicine, profile.Age)...)
	}
	for _, medicine := range medicines {
		warnings = append(warnings, e.allergyWarnings(medicine, profile.Allergies)...)
	}

	// Highest risk first; ties keep pass order.
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Severity.Rank() < warnings[j].Severity.Rank()
	})

	highRisk := 0
	for _, w := range warnings {
		if w.Severity == SeverityHigh {
			highRisk++
		}
	}

	return Result{
		Warnings:      warnings,
		HighRiskCount: highRisk,
		TotalWarnings: len(warnings),
		IsSafe:        highRisk == 0,
	}
}

func (e *Evaluator) contraindicationWarnings(medicine string, conditions []string) []Warning {
	contraindicated := e.rules.ContraindicationsFor(medicine)
	if len(contraindicated) == 0 {
		return nil
	}
	var warnings []Warning
	for _, condition := range conditions {
		for _, c := range contraindicated {
			if c != condition {
				continue
			}
			warnings = append(warnings, Warning{
				Type:           WarningContraindication,
				Severity:       SeverityHigh,
				Medicine:       medicine,
				Condition:      condition,
				Description:    fmt.Sprintf("%s is contraindicated in patients with %s", medicine, condition),
				Recommendation: "Consider alternative medication or specialist consultation",
			})
			break
		}
	}
	return warnings
}

func (e *Evaluator) ageWarnings(medicine string, age *int) []Warning {
	if age == nil {
		// Unknown age skips the pass; absence of data is not a warning.
		return nil
	}
	rule, ok := e.rules.AgeRuleFor(medicine)
	if !ok {
		return nil
	}
	var warnings []Warning
	if rule.MinAge != nil && *age < *rule.MinAge {
		warnings = append(warnings, Warning{
			Type:           WarningAge,
			Severity:       SeverityHigh,
			Medicine:       medicine,
			PatientAge:     age,
			Description:    rule.Warning,
			Recommendation: fmt.Sprintf("Not recommended for patients under %d years", *rule.MinAge),
		})
	}
	if rule.MaxAge != nil && *age > *rule.MaxAge {
		warnings = append(warnings, Warning{
			Type:           WarningAge,
			Severity:       SeverityMedium,
			Medicine:       medicine,
			PatientAge:     age,
			Description:    rule.Warning,
			Recommendation: fmt.Sprintf("Use with caution in patients over %d years", *rule.MaxAge),
		})
	}
	return warnings
}

func (e *Evaluator) allergyWarnings(medicine string, allergies []string) []Warning {
	var warnings []Warning
	for _, declared := range allergies {
		allergy, crossReactive := e.rules.CrossReactiveMedicines(strings.TrimSpace(declared))
		if allergy == "" {
			continue
		}
		for _, m := range crossReactive {
			if m != medicine {
				continue
			}
			warnings = append(warnings, Warning{
				Type:           WarningAllergy,
				Severity:       SeverityHigh,
				Medicine:       medicine,
				Allergy:        allergy,
				Description:    fmt.Sprintf("Patient has %s allergy - %s may cause cross-reactivity", allergy, medicine),
				Recommendation: "Avoid this medication due to potential allergic reaction",
			})
			break
		}
	}
	return warnings
}

// SplitList splits a comma-separated free-text field into trimmed entries,
// dropping empties. Callers use it to normalize the conditions and
// allergies columns stored on customer records.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AgeAt computes a calendar age at the reference time.
func AgeAt(birthDate, at time.Time) int {
	age := at.Year() - birthDate.Year()
	if at.Month() < birthDate.Month() ||
		(at.Month() == birthDate.Month() && at.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeFromDOB parses a YYYY-MM-DD birth date and returns the current age.
// An unparseable date yields nil (age unknown), never an error, so a bad
// customer record degrades to skipping age checks.
func AgeFromDOB(dob string) *int {
	birthDate, err := time.Parse("2006-01-02", strings.TrimSpace(dob))
	if err != nil {
		return nil
	}
	age := AgeAt(birthDate, time.Now())
	return &age
}
