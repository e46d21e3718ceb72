package cvss3

// Metric is a short CVSS v3 metric code such as "AV" or "MPR", used as the
// key in vector strings.
type Metric string

// Value is a single-letter metric value code. Temporal, Environmental, and
// Modified metrics additionally accept NotDefined.
type Value string

// NotDefined means "not specified, use the default" for any Temporal or
// Environmental metric.
const NotDefined Value = "X"

// Scope values, named because the Impact equation changes form on them.
const (
	ScopeUnchanged Value = "U"
	ScopeChanged   Value = "C"
)

// Base metrics.
const (
	AttackVector       Metric = "AV"
	AttackComplexity   Metric = "AC"
	PrivilegesRequired Metric = "PR"
	UserInteraction    Metric = "UI"
	Scope              Metric = "S"
	Confidentiality    Metric = "C"
	Integrity          Metric = "I"
	Availability       Metric = "A"
)

// Temporal metrics.
const (
	ExploitCodeMaturity Metric = "E"
	RemediationLevel    Metric = "RL"
	ReportConfidence    Metric = "RC"
)

// Environmental metrics.
const (
	ConfidentialityRequirement Metric = "CR"
	IntegrityRequirement       Metric = "IR"
	AvailabilityRequirement    Metric = "AR"
	ModifiedAttackVector       Metric = "MAV"
	ModifiedAttackComplexity   Metric = "MAC"
	ModifiedPrivilegesRequired Metric = "MPR"
	ModifiedUserInteraction    Metric = "MUI"
	ModifiedScope              Metric = "MS"
	ModifiedConfidentiality    Metric = "MC"
	ModifiedIntegrity          Metric = "MI"
	ModifiedAvailability       Metric = "MA"
)

// Family identifies which of the three disjoint metric groups a code
// belongs to.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyBase
	FamilyTemporal
	FamilyEnvironmental
)

// baseMetrics is also the iteration order for the mandatory-metric check.
var baseMetrics = []Metric{
	AttackVector, AttackComplexity, PrivilegesRequired, UserInteraction,
	Scope, Confidentiality, Integrity, Availability,
}

var temporalMetrics = []Metric{
	ExploitCodeMaturity, RemediationLevel, ReportConfidence,
}

var environmentalMetrics = []Metric{
	ConfidentialityRequirement, IntegrityRequirement, AvailabilityRequirement,
	ModifiedAttackVector, ModifiedAttackComplexity, ModifiedPrivilegesRequired,
	ModifiedUserInteraction, ModifiedScope, ModifiedConfidentiality,
	ModifiedIntegrity, ModifiedAvailability,
}

// modifiedMetrics are the Environmental metrics that override a Base metric.
var modifiedMetrics = []Metric{
	ModifiedAttackVector, ModifiedAttackComplexity, ModifiedPrivilegesRequired,
	ModifiedUserInteraction, ModifiedScope, ModifiedConfidentiality,
	ModifiedIntegrity, ModifiedAvailability,
}

// modifiedToBase maps each Modified metric to the Base metric it overrides.
// Default population resolves a NotDefined Modified metric through this table.
var modifiedToBase = map[Metric]Metric{
	ModifiedAttackVector:       AttackVector,
	ModifiedAttackComplexity:   AttackComplexity,
	ModifiedPrivilegesRequired: PrivilegesRequired,
	ModifiedUserInteraction:    UserInteraction,
	ModifiedScope:              Scope,
	ModifiedConfidentiality:    Confidentiality,
	ModifiedIntegrity:          Integrity,
	ModifiedAvailability:       Availability,
}

var baseValues = map[Metric][]Value{
	AttackVector:       {"N", "A", "L", "P"},
	AttackComplexity:   {"L", "H"},
	PrivilegesRequired: {"N", "L", "H"},
	UserInteraction:    {"N", "R"},
	Scope:              {"U", "C"},
	Confidentiality:    {"H", "L", "N"},
	Integrity:          {"H", "L", "N"},
	Availability:       {"H", "L", "N"},
}

var temporalValues = map[Metric][]Value{
	ExploitCodeMaturity: {"X", "H", "F", "P", "U"},
	RemediationLevel:    {"X", "U", "W", "T", "O"},
	ReportConfidence:    {"X", "C", "R", "U"},
}

var environmentalValues = map[Metric][]Value{
	ConfidentialityRequirement: {"X", "H", "M", "L"},
	IntegrityRequirement:       {"X", "H", "M", "L"},
	AvailabilityRequirement:    {"X", "H", "M", "L"},
	ModifiedAttackVector:       {"X", "N", "A", "L", "P"},
	ModifiedAttackComplexity:   {"X", "L", "H"},
	ModifiedPrivilegesRequired: {"X", "N", "L", "H"},
	ModifiedUserInteraction:    {"X", "N", "R"},
	ModifiedScope:              {"X", "U", "C"},
	ModifiedConfidentiality:    {"X", "H", "L", "N"},
	ModifiedIntegrity:          {"X", "H", "L", "N"},
	ModifiedAvailability:       {"X", "H", "L", "N"},
}

// Family reports the metric group m belongs to, or FamilyUnknown for codes
// outside the 22-entry v3 metric set.
func (m Metric) Family() Family {
	if _, ok := baseValues[m]; ok {
		return FamilyBase
	}
	if _, ok := temporalValues[m]; ok {
		return FamilyTemporal
	}
	if _, ok := environmentalValues[m]; ok {
		return FamilyEnvironmental
	}
	return FamilyUnknown
}

func legalValues(m Metric) []Value {
	switch m.Family() {
	case FamilyBase:
		return baseValues[m]
	case FamilyTemporal:
		return temporalValues[m]
	case FamilyEnvironmental:
		return environmentalValues[m]
	}
	return nil
}

func isLegalValue(m Metric, v Value) bool {
	for _, legal := range legalValues(m) {
		if v == legal {
			return true
		}
	}
	return false
}

// knownMetrics returns all 22 metric codes in family order, for error
// messages.
func knownMetrics() []Metric {
	out := make([]Metric, 0, len(baseMetrics)+len(temporalMetrics)+len(environmentalMetrics))
	out = append(out, baseMetrics...)
	out = append(out, temporalMetrics...)
	out = append(out, environmentalMetrics...)
	return out
}
