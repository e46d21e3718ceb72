package cvss3

import "errors"

// Validation and scoring errors. All are matchable with errors.Is; the
// wrapped form carries the offending metric or value. ErrMissingModifiedMetric,
// ErrInternalScoreTable, and ErrUnknownMetricValue indicate an inconsistency in
// this package's own tables rather than bad input, and should not be reachable
// through Validate-guarded entry points.
var (
	ErrMissingPrefix          = errors.New("vector must start with \"CVSS:\"")
	ErrUnsupportedVersion     = errors.New("unsupported CVSS version")
	ErrMalformedVector        = errors.New("malformed vector")
	ErrInvalidMetricSegment   = errors.New("invalid metric segment")
	ErrDuplicateMetric        = errors.New("duplicate metric")
	ErrMissingMandatoryMetric = errors.New("missing mandatory metric")
	ErrUnknownMetric          = errors.New("unknown metric")
	ErrInvalidMetricValue     = errors.New("invalid metric value")
	ErrMissingModifiedMetric  = errors.New("modified metric has no base counterpart")
	ErrInternalScoreTable     = errors.New("metric missing from score tables")
	ErrUnknownMetricValue     = errors.New("no score table entry for value")
)
