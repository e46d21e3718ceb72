// Package cvss3 parses, validates, and scores CVSS v3.0 and v3.1 vector
// strings natively, per the equations in the FIRST specification
// (https://www.first.org/cvss/v3-1/specification-document). It is
// one-directional: vector string in, scores out. All functions are pure and
// safe for concurrent use.
package cvss3

// CalculateScores validates a vector and returns its Base, Temporal, and
// Environmental scores in one call. For vectors with no Temporal or
// Environmental metrics the three scores coincide with the Base score.
func CalculateScores(vector string) (base, temporal, environmental float64, err error) {
	base, err = BaseScore(vector)
	if err != nil {
		return 0, 0, 0, err
	}
	temporal, err = TemporalScore(vector)
	if err != nil {
		return 0, 0, 0, err
	}
	environmental, err = EnvironmentalScore(vector)
	if err != nil {
		return 0, 0, 0, err
	}
	return base, temporal, environmental, nil
}
