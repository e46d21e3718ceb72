package cvss3

var metricLabels = map[Metric]string{
	AttackVector:       "Attack Vector",
	AttackComplexity:   "Attack Complexity",
	PrivilegesRequired: "Privileges Required",
	UserInteraction:    "User Interaction",
	Scope:              "Scope",
	Confidentiality:    "Confidentiality",
	Integrity:          "Integrity",
	Availability:       "Availability",

	ExploitCodeMaturity: "Exploit Code Maturity",
	RemediationLevel:    "Remediation Level",
	ReportConfidence:    "Report Confidence",

	ConfidentialityRequirement: "Confidentiality Requirement",
	IntegrityRequirement:       "Integrity Requirement",
	AvailabilityRequirement:    "Availability Requirement",
	ModifiedAttackVector:       "Modified Attack Vector",
	ModifiedAttackComplexity:   "Modified Attack Complexity",
	ModifiedPrivilegesRequired: "Modified Privileges Required",
	ModifiedUserInteraction:    "Modified User Interaction",
	ModifiedScope:              "Modified Scope",
	ModifiedConfidentiality:    "Modified Confidentiality",
	ModifiedIntegrity:          "Modified Integrity",
	ModifiedAvailability:       "Modified Availability",
}

// Value labels are keyed per metric because the same letter reads differently
// depending on its owner: "L" is Local for Attack Vector but Low almost
// everywhere else.
var (
	attackVectorLabels = map[Value]string{
		"N": "Network", "A": "Adjacent", "L": "Local", "P": "Physical",
	}
	attackComplexityLabels = map[Value]string{
		"L": "Low", "H": "High",
	}
	privilegesLabels = map[Value]string{
		"N": "None", "L": "Low", "H": "High",
	}
	interactionLabels = map[Value]string{
		"N": "None", "R": "Required",
	}
	scopeLabels = map[Value]string{
		"U": "Unchanged", "C": "Changed",
	}
	impactLabels = map[Value]string{
		"H": "High", "L": "Low", "N": "None",
	}
	requirementLabels = map[Value]string{
		"H": "High", "M": "Medium", "L": "Low",
	}
	exploitMaturityLabels = map[Value]string{
		"H": "High", "F": "Functional", "P": "Proof-of-Concept", "U": "Unproven",
	}
	remediationLabels = map[Value]string{
		"U": "Unavailable", "W": "Workaround", "T": "Temporary Fix", "O": "Official Fix",
	}
	confidenceLabels = map[Value]string{
		"C": "Confirmed", "R": "Reasonable", "U": "Unknown",
	}
)

var valueLabels = map[Metric]map[Value]string{
	AttackVector:       attackVectorLabels,
	AttackComplexity:   attackComplexityLabels,
	PrivilegesRequired: privilegesLabels,
	UserInteraction:    interactionLabels,
	Scope:              scopeLabels,
	Confidentiality:    impactLabels,
	Integrity:          impactLabels,
	Availability:       impactLabels,

	ExploitCodeMaturity: exploitMaturityLabels,
	RemediationLevel:    remediationLabels,
	ReportConfidence:    confidenceLabels,

	ConfidentialityRequirement: requirementLabels,
	IntegrityRequirement:       requirementLabels,
	AvailabilityRequirement:    requirementLabels,
	ModifiedAttackVector:       attackVectorLabels,
	ModifiedAttackComplexity:   attackComplexityLabels,
	ModifiedPrivilegesRequired: privilegesLabels,
	ModifiedUserInteraction:    interactionLabels,
	ModifiedScope:              scopeLabels,
	ModifiedConfidentiality:    impactLabels,
	ModifiedIntegrity:          impactLabels,
	ModifiedAvailability:       impactLabels,
}

// MetricLabel returns the human-readable name of a metric code, or the code
// itself when it is not a known v3 metric.
func MetricLabel(m Metric) string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

// ValueLabel returns the human-readable name of a value in the context of its
// owning metric. NotDefined reads the same everywhere; unknown pairs fall back
// to the raw code.
func ValueLabel(m Metric, v Value) string {
	if v == NotDefined {
		return "Not Defined"
	}
	if labels, ok := valueLabels[m]; ok {
		if label, ok := labels[v]; ok {
			return label
		}
	}
	return string(v)
}

// SeverityRating maps a score to its qualitative severity band.
func SeverityRating(score float64) string {
	switch {
	case score <= 0:
		return "None"
	case score <= 3.9:
		return "Low"
	case score <= 6.9:
		return "Medium"
	case score <= 8.9:
		return "High"
	default:
		return "Critical"
	}
}
