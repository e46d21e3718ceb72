package cvss3

import (
	"fmt"
	"regexp"
	"strings"
)

var versionRe = regexp.MustCompile(`^CVSS:(\d(?:\.\d)?)`)

// vectorVersion extracts the version token from the vector prefix, e.g.
// "3.1" from "CVSS:3.1/AV:N/...". ok is false when no version token parses.
func vectorVersion(vector string) (version string, ok bool) {
	m := versionRe.FindStringSubmatch(vector)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// parseVector splits a vector string into metric/value pairs. It is purely
// syntactic: any key:value shape is accepted, legality is Validate's job.
// The version token, if present, is stripped before splitting.
func parseVector(vector string) (map[Metric]Value, error) {
	body := vector
	if m := versionRe.FindString(vector); m != "" {
		body = vector[len(m):]
	}
	body = strings.TrimPrefix(body, "/")

	metrics := make(map[Metric]Value)
	for _, segment := range strings.Split(body, "/") {
		key, value, found := strings.Cut(segment, ":")
		if !found || key == "" || value == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMetricSegment, segment)
		}
		m := Metric(key)
		if _, seen := metrics[m]; seen {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMetric, key)
		}
		metrics[m] = Value(value)
	}
	return metrics, nil
}
