package cvss3

import (
	"fmt"
	"strings"
)

const vectorPrefix = "CVSS:"

// Validation is the outcome of validating a vector string: the parsed
// metrics, the version token, and whether any Temporal or Environmental
// metrics were supplied.
type Validation struct {
	Metrics          map[Metric]Value
	Version          string
	HasTemporal      bool
	HasEnvironmental bool
}

// Validate parses a CVSS v3.0/3.1 vector string and checks it structurally
// and semantically: prefix, version, vector shape, the presence of all eight
// Base metrics, and the legality of every metric and value. Checks run in a
// fixed order and the first failure wins.
func Validate(vector string) (*Validation, error) {
	if !strings.HasPrefix(vector, vectorPrefix) {
		return nil, fmt.Errorf("%w: %q", ErrMissingPrefix, vector)
	}
	version, ok := vectorVersion(vector)
	if !ok {
		return nil, fmt.Errorf("%w: no version token in %q", ErrUnsupportedVersion, vector)
	}
	if version != "3.0" && version != "3.1" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}
	body := vector[len(vectorPrefix)+len(version):]
	if body == "" || strings.Contains(body, "//") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedVector, vector)
	}

	metrics, err := parseVector(vector)
	if err != nil {
		return nil, err
	}

	for _, m := range baseMetrics {
		if _, ok := metrics[m]; !ok {
			return nil, fmt.Errorf("%w: %s (%s)", ErrMissingMandatoryMetric, m, MetricLabel(m))
		}
	}
	for m := range metrics {
		if m.Family() == FamilyUnknown {
			return nil, fmt.Errorf("%w: %q (known metrics: %s)", ErrUnknownMetric, string(m), knownMetricList())
		}
	}
	for m, v := range metrics {
		if !isLegalValue(m, v) {
			return nil, fmt.Errorf("%w: %q for %s (%s); legal values: %s",
				ErrInvalidMetricValue, string(v), m, MetricLabel(m), legalValueList(m))
		}
	}

	return &Validation{
		Metrics:          metrics,
		Version:          version,
		HasTemporal:      anyInFamily(metrics, FamilyTemporal),
		HasEnvironmental: anyInFamily(metrics, FamilyEnvironmental),
	}, nil
}

func anyInFamily(metrics map[Metric]Value, f Family) bool {
	for m := range metrics {
		if m.Family() == f {
			return true
		}
	}
	return false
}

func knownMetricList() string {
	known := knownMetrics()
	codes := make([]string, len(known))
	for i, m := range known {
		codes[i] = string(m)
	}
	return strings.Join(codes, ", ")
}

// legalValueList renders a metric's legal values with their human labels,
// e.g. "N (Network), A (Adjacent), L (Local), P (Physical)".
func legalValueList(m Metric) string {
	values := legalValues(m)
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%s (%s)", v, ValueLabel(m, v))
	}
	return strings.Join(parts, ", ")
}
