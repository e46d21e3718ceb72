package cvss3

import (
	"fmt"
	"math"
)

// Score is a computed CVSS score together with its rounded Impact and
// Exploitability sub-scores and the metrics map the equations ran on
// (defaults populated).
type Score struct {
	Score          float64
	Impact         float64
	Exploitability float64
	Metrics        map[Metric]Value
}

var baseWeights = map[Metric]map[Value]float64{
	AttackVector:     {"N": 0.85, "A": 0.62, "L": 0.55, "P": 0.2},
	AttackComplexity: {"L": 0.77, "H": 0.44},
	UserInteraction:  {"N": 0.85, "R": 0.62},
	Confidentiality:  {"H": 0.56, "L": 0.22, "N": 0},
	Integrity:        {"H": 0.56, "L": 0.22, "N": 0},
	Availability:     {"H": 0.56, "L": 0.22, "N": 0},
	// Scope has no weight of its own; Privileges Required is scope-dependent
	// and handled by privilegesWeight.
}

var temporalWeights = map[Metric]map[Value]float64{
	ExploitCodeMaturity: {"X": 1, "H": 1, "F": 0.97, "P": 0.94, "U": 0.91},
	RemediationLevel:    {"X": 1, "U": 1, "W": 0.97, "T": 0.96, "O": 0.95},
	ReportConfidence:    {"X": 1, "C": 1, "R": 0.96, "U": 0.92},
}

var environmentalWeights = map[Metric]map[Value]float64{
	ConfidentialityRequirement: {"X": 1, "H": 1.5, "M": 1, "L": 0.5},
	IntegrityRequirement:       {"X": 1, "H": 1.5, "M": 1, "L": 0.5},
	AvailabilityRequirement:    {"X": 1, "H": 1.5, "M": 1, "L": 0.5},
	ModifiedAttackVector:       {"N": 0.85, "A": 0.62, "L": 0.55, "P": 0.2},
	ModifiedAttackComplexity:   {"L": 0.77, "H": 0.44},
	ModifiedUserInteraction:    {"N": 0.85, "R": 0.62},
	ModifiedConfidentiality:    {"H": 0.56, "L": 0.22, "N": 0},
	ModifiedIntegrity:          {"H": 0.56, "L": 0.22, "N": 0},
	ModifiedAvailability:       {"H": 0.56, "L": 0.22, "N": 0},
}

// privilegesWeight is the one metric whose weight depends on another: the
// Privileges Required weights shift when Scope (or Modified Scope, for MPR)
// is Changed.
func privilegesWeight(v, scope Value) (float64, error) {
	changed := scope == ScopeChanged
	switch v {
	case "N":
		return 0.85, nil
	case "L":
		if changed {
			return 0.68, nil
		}
		return 0.62, nil
	case "H":
		if changed {
			return 0.5, nil
		}
		return 0.27, nil
	}
	return 0, fmt.Errorf("%w: %q for %s", ErrUnknownMetricValue, string(v), PrivilegesRequired)
}

// metricWeight resolves the numeric weight for a metric/value pair,
// dispatching on the metric's family. scope is the effective Scope value for
// the equation being computed (S for base metrics, MS for modified ones); it
// only matters for PR and MPR.
func metricWeight(m Metric, v, scope Value) (float64, error) {
	if m == PrivilegesRequired || m == ModifiedPrivilegesRequired {
		return privilegesWeight(v, scope)
	}
	var table map[Value]float64
	switch m.Family() {
	case FamilyBase:
		table = baseWeights[m]
	case FamilyTemporal:
		table = temporalWeights[m]
	case FamilyEnvironmental:
		table = environmentalWeights[m]
	}
	if table == nil {
		return 0, fmt.Errorf("%w: %s", ErrInternalScoreTable, m)
	}
	w, ok := table[v]
	if !ok {
		return 0, fmt.Errorf("%w: %q for %s", ErrUnknownMetricValue, string(v), m)
	}
	return w, nil
}

func weightOf(metrics map[Metric]Value, m, scope Metric) (float64, error) {
	v, ok := metrics[m]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingMandatoryMetric, m)
	}
	return metricWeight(m, v, metrics[scope])
}

// roundUp is the CVSS v3.1 appendix "Roundup" function: ceiling to the
// nearest tenth. It works on an integer representation because a naive
// decimal round drifts on binary floating point (e.g. 8.6×0.915×1×1).
func roundUp(x float64) float64 {
	n := math.Round(x * 100000)
	if math.Mod(n, 10000) == 0 {
		return n / 100000
	}
	return math.Floor(n/10000+1) / 10
}

// withTemporalDefaults returns a copy of metrics with every absent Temporal
// metric set to NotDefined. The input map is not modified.
func withTemporalDefaults(metrics map[Metric]Value) map[Metric]Value {
	out := make(map[Metric]Value, len(metrics)+len(temporalMetrics))
	for m, v := range metrics {
		out[m] = v
	}
	for _, m := range temporalMetrics {
		if _, ok := out[m]; !ok {
			out[m] = NotDefined
		}
	}
	return out
}

// withEnvironmentalDefaults returns a copy of metrics with every absent
// Environmental metric set to NotDefined, and every NotDefined Modified
// metric resolved to its Base counterpart's value. Requirement metrics stay
// NotDefined (weight 1). The input map is not modified.
func withEnvironmentalDefaults(metrics map[Metric]Value) (map[Metric]Value, error) {
	out := make(map[Metric]Value, len(metrics)+len(environmentalMetrics))
	for m, v := range metrics {
		out[m] = v
	}
	for _, m := range environmentalMetrics {
		if _, ok := out[m]; !ok {
			out[m] = NotDefined
		}
	}
	for _, m := range modifiedMetrics {
		if out[m] != NotDefined {
			continue
		}
		base, ok := modifiedToBase[m]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingModifiedMetric, m)
		}
		if v, ok := out[base]; ok {
			out[m] = v
		}
	}
	return out, nil
}

// ISS is the Impact Sub-Score equation, 1-(1-C)(1-I)(1-A), before any Scope
// adjustment. Exported as a building block for custom reporting.
func ISS(metrics map[Metric]Value) (float64, error) {
	c, err := weightOf(metrics, Confidentiality, Scope)
	if err != nil {
		return 0, err
	}
	i, err := weightOf(metrics, Integrity, Scope)
	if err != nil {
		return 0, err
	}
	a, err := weightOf(metrics, Availability, Scope)
	if err != nil {
		return 0, err
	}
	return 1 - (1-c)*(1-i)*(1-a), nil
}

// ImpactSubScore is the unrounded Impact equation; its form depends on Scope.
func ImpactSubScore(metrics map[Metric]Value) (float64, error) {
	iss, err := ISS(metrics)
	if err != nil {
		return 0, err
	}
	if metrics[Scope] == ScopeChanged {
		return 7.52*(iss-0.029) - 3.25*math.Pow(iss-0.02, 15), nil
	}
	return 6.42 * iss, nil
}

// ExploitabilitySubScore is the unrounded Exploitability equation,
// 8.22·AV·AC·PR·UI.
func ExploitabilitySubScore(metrics map[Metric]Value) (float64, error) {
	product := 8.22
	for _, m := range []Metric{AttackVector, AttackComplexity, PrivilegesRequired, UserInteraction} {
		w, err := weightOf(metrics, m, Scope)
		if err != nil {
			return 0, err
		}
		product *= w
	}
	return product, nil
}

// modifiedISS is the MISS equation, capped at 0.915. Requires environmental
// defaults to be populated.
func modifiedISS(metrics map[Metric]Value) (float64, error) {
	var w [6]float64
	for i, m := range []Metric{
		ConfidentialityRequirement, ModifiedConfidentiality,
		IntegrityRequirement, ModifiedIntegrity,
		AvailabilityRequirement, ModifiedAvailability,
	} {
		weight, err := weightOf(metrics, m, ModifiedScope)
		if err != nil {
			return 0, err
		}
		w[i] = weight
	}
	miss := 1 - (1-w[0]*w[1])*(1-w[2]*w[3])*(1-w[4]*w[5])
	return math.Min(miss, 0.915), nil
}

// modifiedImpact mirrors ImpactSubScore for the modified metrics. The
// changed-scope branch is the only place 3.0 and 3.1 diverge numerically:
// 3.1 damps MISS by 0.9731 and drops the exponent from 15 to 13.
func modifiedImpact(metrics map[Metric]Value, version string) (float64, error) {
	miss, err := modifiedISS(metrics)
	if err != nil {
		return 0, err
	}
	if metrics[ModifiedScope] != ScopeChanged {
		return 6.42 * miss, nil
	}
	k, p := 1.0, 15.0
	if version == "3.1" {
		k, p = 0.9731, 13.0
	}
	return 7.52*(miss-0.029) - 3.25*math.Pow(miss*k-0.02, p), nil
}

func modifiedExploitability(metrics map[Metric]Value) (float64, error) {
	product := 8.22
	for _, m := range []Metric{
		ModifiedAttackVector, ModifiedAttackComplexity,
		ModifiedPrivilegesRequired, ModifiedUserInteraction,
	} {
		w, err := weightOf(metrics, m, ModifiedScope)
		if err != nil {
			return 0, err
		}
		product *= w
	}
	return product, nil
}

// combineScore applies the scope multiplier, the 10.0 cap, and rounding to an
// impact/exploitability pair. A non-positive impact floors the score at 0.
func combineScore(impact, exploitability float64, scope Value) float64 {
	if impact <= 0 {
		return 0
	}
	sum := impact + exploitability
	if scope == ScopeChanged {
		sum *= 1.08
	}
	return roundUp(math.Min(sum, 10))
}

func temporalMultiplier(metrics map[Metric]Value) (float64, error) {
	product := 1.0
	for _, m := range temporalMetrics {
		w, err := weightOf(metrics, m, Scope)
		if err != nil {
			return 0, err
		}
		product *= w
	}
	return product, nil
}

func subScores(impact, exploitability float64) (float64, float64) {
	if impact <= 0 {
		return 0, 0
	}
	return roundUp(impact), roundUp(exploitability)
}

// BaseResult validates the vector and computes its Base score with sub-scores.
func BaseResult(vector string) (*Score, error) {
	v, err := Validate(vector)
	if err != nil {
		return nil, err
	}
	impact, err := ImpactSubScore(v.Metrics)
	if err != nil {
		return nil, err
	}
	exploitability, err := ExploitabilitySubScore(v.Metrics)
	if err != nil {
		return nil, err
	}
	roundedImpact, roundedExpl := subScores(impact, exploitability)
	return &Score{
		Score:          combineScore(impact, exploitability, v.Metrics[Scope]),
		Impact:         roundedImpact,
		Exploitability: roundedExpl,
		Metrics:        v.Metrics,
	}, nil
}

// TemporalResult computes the Temporal score: the Base score dampened by the
// Exploit Code Maturity, Remediation Level, and Report Confidence weights.
// Absent Temporal metrics default to NotDefined (weight 1).
func TemporalResult(vector string) (*Score, error) {
	v, err := Validate(vector)
	if err != nil {
		return nil, err
	}
	metrics := withTemporalDefaults(v.Metrics)
	impact, err := ImpactSubScore(metrics)
	if err != nil {
		return nil, err
	}
	exploitability, err := ExploitabilitySubScore(metrics)
	if err != nil {
		return nil, err
	}
	multiplier, err := temporalMultiplier(metrics)
	if err != nil {
		return nil, err
	}
	base := combineScore(impact, exploitability, metrics[Scope])
	roundedImpact, roundedExpl := subScores(impact, exploitability)
	return &Score{
		Score:          roundUp(base * multiplier),
		Impact:         roundedImpact,
		Exploitability: roundedExpl,
		Metrics:        metrics,
	}, nil
}

// EnvironmentalResult computes the Environmental score from the modified
// equations. Absent Environmental metrics default to NotDefined; NotDefined
// Modified metrics take their Base counterpart's value.
func EnvironmentalResult(vector string) (*Score, error) {
	v, err := Validate(vector)
	if err != nil {
		return nil, err
	}
	metrics, err := withEnvironmentalDefaults(withTemporalDefaults(v.Metrics))
	if err != nil {
		return nil, err
	}
	impact, err := modifiedImpact(metrics, v.Version)
	if err != nil {
		return nil, err
	}
	exploitability, err := modifiedExploitability(metrics)
	if err != nil {
		return nil, err
	}
	multiplier, err := temporalMultiplier(metrics)
	if err != nil {
		return nil, err
	}
	inner := combineScore(impact, exploitability, metrics[ModifiedScope])
	score := 0.0
	if impact > 0 {
		score = roundUp(inner * multiplier)
	}
	roundedImpact, roundedExpl := subScores(impact, exploitability)
	return &Score{
		Score:          score,
		Impact:         roundedImpact,
		Exploitability: roundedExpl,
		Metrics:        metrics,
	}, nil
}

// BaseScore validates the vector and returns its Base score.
func BaseScore(vector string) (float64, error) {
	r, err := BaseResult(vector)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}

// TemporalScore validates the vector and returns its Temporal score.
func TemporalScore(vector string) (float64, error) {
	r, err := TemporalResult(vector)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}

// EnvironmentalScore validates the vector and returns its Environmental score.
func EnvironmentalScore(vector string) (float64, error) {
	r, err := EnvironmentalResult(vector)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}
