// Temporal and Environmental metrics like E, MC, MA can be appended to a base
// vector to describe the deployer's context; the modified vector then yields
// Temporal and Environmental scores for that context.

package cvss3

import (
	"errors"
	"fmt"
	"strings"
)

// MetricsOptions defines the Temporal/Environmental values to append to a
// base vector. Empty fields are skipped. With Smart set, a Modified metric
// that would rate the vulnerability as more severe than its Base counterpart
// is skipped instead of applied; CR/IR/AR reflect business criticality and
// are never suppressed.
type MetricsOptions struct {
	E, RL, RC                          string
	CR, IR, AR                         string
	MAV, MAC, MPR, MUI, MS, MC, MI, MA string
	Smart                              bool
}

// severityRank orders each base metric's values from most to least severe,
// for Smart clamping.
var severityRank = map[Metric]map[Value]int{
	AttackVector:       {"N": 4, "A": 3, "L": 2, "P": 1},
	AttackComplexity:   {"L": 2, "H": 1},
	PrivilegesRequired: {"N": 3, "L": 2, "H": 1},
	UserInteraction:    {"N": 2, "R": 1},
	Scope:              {"C": 2, "U": 1},
	Confidentiality:    {"H": 3, "L": 2, "N": 1},
	Integrity:          {"H": 3, "L": 2, "N": 1},
	Availability:       {"H": 3, "L": 2, "N": 1},
}

// ApplyMetrics appends the given Temporal/Environmental metrics to a base
// vector. Vectors of unsupported CVSS versions are returned unchanged so that
// callers can pass through whatever a report contains; invalid 3.x vectors
// are an error. The result is not re-validated: supplied option values are
// uppercased but otherwise taken as-is.
func ApplyMetrics(baseVector string, opts MetricsOptions) (string, error) {
	if _, err := Validate(baseVector); err != nil {
		if errors.Is(err, ErrMissingPrefix) || errors.Is(err, ErrUnsupportedVersion) {
			return baseVector, nil
		}
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(baseVector)
	parsed, err := parseVector(baseVector)
	if err != nil {
		return "", err
	}

	temporals := []struct {
		Key Metric
		Val string
	}{
		{ExploitCodeMaturity, opts.E}, {RemediationLevel, opts.RL}, {ReportConfidence, opts.RC},
	}
	for _, m := range temporals {
		if m.Val != "" {
			fmt.Fprintf(&sb, "/%s:%s", m.Key, strings.ToUpper(m.Val))
		}
	}

	environmentals := []struct {
		Key Metric
		Val string
	}{
		{ConfidentialityRequirement, opts.CR}, {IntegrityRequirement, opts.IR}, {AvailabilityRequirement, opts.AR},
		{ModifiedAttackVector, opts.MAV}, {ModifiedAttackComplexity, opts.MAC},
		{ModifiedPrivilegesRequired, opts.MPR}, {ModifiedUserInteraction, opts.MUI},
		{ModifiedScope, opts.MS}, {ModifiedConfidentiality, opts.MC},
		{ModifiedIntegrity, opts.MI}, {ModifiedAvailability, opts.MA},
	}
	for _, m := range environmentals {
		if m.Val == "" {
			continue
		}
		upper := Value(strings.ToUpper(m.Val))
		if shouldApplyMetric(m.Key, upper, parsed, opts.Smart) {
			fmt.Fprintf(&sb, "/%s:%s", m.Key, upper)
		}
	}
	return sb.String(), nil
}

// shouldApplyMetric decides whether a Modified metric survives Smart
// clamping: it is skipped only when it outranks the Base value it overrides.
func shouldApplyMetric(m Metric, v Value, parsed map[Metric]Value, smart bool) bool {
	if v == NotDefined || !smart {
		return true
	}
	base, isModified := modifiedToBase[m]
	if !isModified {
		// CR/IR/AR have no base counterpart to clamp against.
		return true
	}
	ranks, ok := severityRank[base]
	if !ok {
		return true
	}
	baseVal, ok := parsed[base]
	if !ok {
		return true
	}
	baseRank, baseOk := ranks[baseVal]
	modRank, modOk := ranks[v]
	if baseOk && modOk && modRank > baseRank {
		return false
	}
	return true
}
