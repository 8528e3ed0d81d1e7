package safety

func intPtr(v int) *int { return &v }

// DefaultRuleSet returns the hand-authored seed rules written to the rule
// file on first use. The content covers the common dangerous combinations a
// community pharmacy sees; it is domain data, editable after seeding.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Interactions: map[string]map[string]InteractionRule{
			"Warfarin": {
				"Amoxicillin": {
					Severity:       SeverityHigh,
					Description:    "Increased risk of bleeding due to reduced Warfarin metabolism",
					Recommendation: "Monitor INR closely and adjust Warfarin dose",
				},
				"Ibuprofen": {
					Severity:       SeverityHigh,
					Description:    "Significantly increased risk of bleeding and stomach ulcers",
					Recommendation: "Avoid combination or use alternative pain relief",
				},
				"Aspirin": {
					Severity:       SeverityHigh,
					Description:    "Dangerously increased risk of bleeding",
					Recommendation: "Contraindicated - avoid combination",
				},
			},
			"Ibuprofen": {
				"Aspirin": {
					Severity:       SeverityMedium,
					Description:    "Increased risk of stomach bleeding and ulcers",
					Recommendation: "Use with caution, consider gastroprotection",
				},
				"Lisinopril": {
					Severity:       SeverityMedium,
					Description:    "May reduce the blood pressure lowering effects of Lisinopril",
					Recommendation: "Monitor blood pressure closely",
				},
			},
			"Digoxin": {
				"Amoxicillin": {
					Severity:       SeverityMedium,
					Description:    "May increase Digoxin levels and risk of toxicity",
					Recommendation: "Monitor Digoxin levels and watch for signs of toxicity",
				},
				"Omeprazole": {
					Severity:       SeverityMedium,
					Description:    "May increase Digoxin absorption and levels",
					Recommendation: "Monitor Digoxin levels closely",
				},
			},
			"Lithium": {
				"Ibuprofen": {
					Severity:       SeverityHigh,
					Description:    "NSAIDs can increase Lithium levels leading to toxicity",
					Recommendation: "Avoid combination or monitor Lithium levels very closely",
				},
			},
			"Methotrexate": {
				"Ibuprofen": {
					Severity:       SeverityHigh,
					Description:    "NSAIDs can increase Methotrexate toxicity",
					Recommendation: "Avoid NSAIDs during Methotrexate treatment",
				},
				"Aspirin": {
					Severity:       SeverityHigh,
					Description:    "May increase Methotrexate toxicity",
					Recommendation: "Use with extreme caution or avoid",
				},
			},
			"Omeprazole": {
				"Clopidogrel": {
					Severity:       SeverityHigh,
					Description:    "May reduce the effectiveness of Clopidogrel",
					Recommendation: "Consider alternative acid suppression therapy",
				},
			},
			"Simvastatin": {
				"Amoxicillin": {
					Severity:       SeverityMedium,
					Description:    "May increase risk of muscle toxicity",
					Recommendation: "Monitor for muscle pain and weakness",
				},
				"Clarithromycin": {
					Severity:       SeverityHigh,
					Description:    "Significantly increased risk of muscle toxicity and rhabdomyolysis",
					Recommendation: "Contraindicated - avoid combination",
				},
			},
			"Prednisone": {
				"Ibuprofen": {
					Severity:       SeverityMedium,
					Description:    "Increased risk of stomach ulcers and bleeding",
					Recommendation: "Use gastroprotection and monitor closely",
				},
				"Aspirin": {
					Severity:       SeverityHigh,
					Description:    "Significantly increased risk of stomach ulcers and bleeding",
					Recommendation: "Avoid combination or use alternative pain relief",
				},
			},
		},
		Contraindications: map[string][]string{
			"Warfarin": {
				"Recent surgery",
				"Active bleeding",
				"Severe hypertension",
				"Pregnancy (first trimester)",
			},
			"Amoxicillin": {
				"History of severe allergic reaction to penicillin",
				"Infectious mononucleosis",
			},
			"Ibuprofen": {
				"Active stomach ulcer",
				"Severe heart failure",
				"Third trimester pregnancy",
				"Severe kidney impairment",
			},
			"Aspirin": {
				"Children under 16 with viral infections",
				"Active stomach ulcer",
				"Bleeding disorders",
				"Severe liver impairment",
			},
			"Digoxin": {
				"Heart block",
				"Severe bradycardia",
				"Hypokalemia",
			},
			"Lithium": {
				"Severe kidney impairment",
				"Dehydration",
				"Heart disease",
			},
			"Methotrexate": {
				"Pregnancy",
				"Severe kidney impairment",
				"Severe liver impairment",
				"Active infection",
			},
			"Omeprazole": {
				"Severe liver impairment",
			},
		},
		AgeWarnings: map[string]AgeRule{
			"Aspirin": {
				MinAge:  intPtr(16),
				Warning: "Not recommended for children under 16 due to risk of Reye's syndrome",
			},
			"Warfarin": {
				MinAge:  intPtr(18),
				Warning: "Requires careful monitoring in elderly patients",
			},
			"Ibuprofen": {
				Warning: "Use with caution in elderly patients - increased risk of side effects",
			},
		},
		AllergyWarnings: map[string][]string{
			"Penicillin": {"Amoxicillin", "Ampicillin", "Dicloxacillin"},
			"Aspirin":    {"Ibuprofen", "Naproxen"},
			"Sulfa":      {"Sulfamethoxazole", "Sulfasalazine"},
		},
	}
}
