package cvss3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseScoreReferenceVectors(t *testing.T) {
	tests := []struct {
		vector string
		want   float64
	}{
		{"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", 9.8},
		{"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H", 10.0},
		{"CVSS:3.1/AV:L/AC:L/PR:L/UI:N/S:U/C:H/I:H/A:H", 7.8},
		{"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:L/I:L/A:N", 6.5},
		{"CVSS:3.0/AV:A/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:L", 1.8},
		{"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:N/I:N/A:N", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.vector, func(t *testing.T) {
			got, err := BaseScore(tt.vector)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBaseResultSubScores(t *testing.T) {
	r, err := BaseResult(baseVector)
	require.NoError(t, err)
	assert.InDelta(t, 9.8, r.Score, 1e-9)
	assert.InDelta(t, 5.9, r.Impact, 1e-9)
	assert.InDelta(t, 3.9, r.Exploitability, 1e-9)
}

// A non-positive impact floors the score and both sub-scores at 0 even though
// the exploitability term is positive.
func TestZeroImpactFloor(t *testing.T) {
	for _, vector := range []string{
		"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:N/I:N/A:N",
		// Changed scope makes the impact equation go slightly negative here.
		"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:N/I:N/A:N",
	} {
		r, err := BaseResult(vector)
		require.NoError(t, err)
		assert.Zero(t, r.Score, vector)
		assert.Zero(t, r.Impact, vector)
		assert.Zero(t, r.Exploitability, vector)

		temporal, err := TemporalScore(vector)
		require.NoError(t, err)
		assert.Zero(t, temporal, vector)

		environmental, err := EnvironmentalScore(vector)
		require.NoError(t, err)
		assert.Zero(t, environmental, vector)
	}
}

func TestTemporalScore(t *testing.T) {
	got, err := TemporalScore(baseVector + "/E:U/RL:O/RC:C")
	require.NoError(t, err)
	assert.InDelta(t, 8.5, got, 1e-9)
}

// No temporal metrics means every multiplier defaults to 1.
func TestTemporalScoreDefaultsToBase(t *testing.T) {
	base, err := BaseScore(baseVector)
	require.NoError(t, err)
	temporal, err := TemporalScore(baseVector)
	require.NoError(t, err)
	assert.InDelta(t, base, temporal, 1e-9)
}

func TestTemporalNeverExceedsBase(t *testing.T) {
	vectors := []string{
		baseVector,
		baseVector + "/E:U/RL:O/RC:C",
		baseVector + "/E:P/RL:T/RC:R",
		baseVector + "/E:F/RL:W/RC:U",
		"CVSS:3.0/AV:A/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:L/E:H/RL:U/RC:C",
		"CVSS:3.1/AV:L/AC:L/PR:L/UI:N/S:U/C:H/I:H/A:H/E:U",
	}
	for _, vector := range vectors {
		base, err := BaseScore(vector)
		require.NoError(t, err)
		temporal, err := TemporalScore(vector)
		require.NoError(t, err)
		assert.LessOrEqual(t, temporal, base, vector)
	}
}

// With no environmental metrics supplied, every Modified metric inherits its
// Base counterpart and the Environmental score collapses to the Base score.
func TestEnvironmentalScoreDefaultsToBase(t *testing.T) {
	base, err := BaseScore(baseVector)
	require.NoError(t, err)
	environmental, err := EnvironmentalScore(baseVector)
	require.NoError(t, err)
	assert.InDelta(t, base, environmental, 1e-9)
}

func TestEnvironmentalRequirementsLowerScore(t *testing.T) {
	got, err := EnvironmentalScore(baseVector + "/CR:L/IR:L/AR:L")
	require.NoError(t, err)
	assert.InDelta(t, 8.0, got, 1e-9)
}

// The only numeric difference between 3.0 and 3.1 is the changed-scope branch
// of the Modified Impact equation: 3.1 damps MISS by 0.9731 and uses exponent
// 13 instead of 15.
func TestEnvironmentalVersionDivergence(t *testing.T) {
	const suffix = "/AV:P/AC:H/PR:H/UI:R/S:C/C:H/I:H/A:H/CR:H/IR:H/AR:H"

	got31, err := EnvironmentalScore("CVSS:3.1" + suffix)
	require.NoError(t, err)
	assert.InDelta(t, 6.9, got31, 1e-9)

	got30, err := EnvironmentalScore("CVSS:3.0" + suffix)
	require.NoError(t, err)
	assert.InDelta(t, 6.8, got30, 1e-9)
}

func TestEnvironmentalTemporalMultiplier(t *testing.T) {
	got, err := EnvironmentalScore("CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:C/C:H/I:H/A:H/CR:H/IR:H/AR:H/E:U/RL:O")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-9)
}

// Modified Privileges Required must be weighted against Modified Scope, not
// the base Scope.
func TestModifiedPrivilegesUseModifiedScope(t *testing.T) {
	got, err := EnvironmentalScore("CVSS:3.1/AV:N/AC:L/PR:L/UI:N/S:U/C:L/I:N/A:N/MS:C")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-9)
}

func TestAllScoresBoundedAndTenthValued(t *testing.T) {
	vectors := []string{
		baseVector,
		"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H",
		"CVSS:3.0/AV:A/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:L",
		"CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:C/C:L/I:L/A:L/E:U/RL:O/RC:U/CR:L/IR:M/AR:H/MAV:L/MAC:H/MPR:H/MUI:R/MS:U/MC:L/MI:N/MA:N",
		"CVSS:3.1/AV:L/AC:H/PR:N/UI:R/S:U/C:N/I:L/A:N",
		"CVSS:3.0/AV:N/AC:L/PR:L/UI:R/S:C/C:L/I:L/A:N/CR:H/MS:C/MC:H",
	}
	for _, vector := range vectors {
		base, temporal, environmental, err := CalculateScores(vector)
		require.NoError(t, err, vector)
		for _, score := range []float64{base, temporal, environmental} {
			assert.GreaterOrEqual(t, score, 0.0, vector)
			assert.LessOrEqual(t, score, 10.0, vector)
			assert.InDelta(t, math.Round(score*10), score*10, 1e-9, vector)
		}
	}
}

func TestScoringRejectsInvalidVectors(t *testing.T) {
	for _, vector := range []string{
		"CVSS:2.0/AV:N/AC:L/Au:N/C:P/I:P/A:P",
		"CVSS:3.1/AV:N/AC:L",
		"not a vector",
	} {
		_, err := BaseScore(vector)
		assert.Error(t, err, vector)
		_, err = TemporalScore(vector)
		assert.Error(t, err, vector)
		_, err = EnvironmentalScore(vector)
		assert.Error(t, err, vector)
	}
}

func TestRoundUp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.0, 4.0},
		{4.02, 4.1},
		{4.00001, 4.1},
		{1.7877804384, 1.8},
		{8.4721, 8.5},
		{9.76, 9.8},
		{10, 10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, roundUp(tt.in), 1e-9, "roundUp(%v)", tt.in)
	}
}

func TestRoundUpIdempotent(t *testing.T) {
	for x := 0.0; x <= 10.0; x += 0.0137 {
		once := roundUp(x)
		assert.InDelta(t, once, roundUp(once), 1e-9, "x=%v", x)
	}
}

func TestPrivilegesWeight(t *testing.T) {
	tests := []struct {
		value Value
		scope Value
		want  float64
	}{
		{"N", ScopeUnchanged, 0.85},
		{"N", ScopeChanged, 0.85},
		{"L", ScopeUnchanged, 0.62},
		{"L", ScopeChanged, 0.68},
		{"H", ScopeUnchanged, 0.27},
		{"H", ScopeChanged, 0.5},
	}
	for _, tt := range tests {
		got, err := privilegesWeight(tt.value, tt.scope)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "PR:%s S:%s", tt.value, tt.scope)
	}

	_, err := privilegesWeight("X", ScopeUnchanged)
	assert.ErrorIs(t, err, ErrUnknownMetricValue)
}

func TestMetricWeightErrors(t *testing.T) {
	_, err := metricWeight(AttackVector, "Z", ScopeUnchanged)
	assert.ErrorIs(t, err, ErrUnknownMetricValue)

	_, err = metricWeight(Metric("ZZ"), "N", ScopeUnchanged)
	assert.ErrorIs(t, err, ErrInternalScoreTable)
}

func TestWithTemporalDefaults(t *testing.T) {
	in := map[Metric]Value{AttackVector: "N", ExploitCodeMaturity: "F"}
	out := withTemporalDefaults(in)
	assert.Equal(t, Value("F"), out[ExploitCodeMaturity])
	assert.Equal(t, NotDefined, out[RemediationLevel])
	assert.Equal(t, NotDefined, out[ReportConfidence])

	_, ok := in[RemediationLevel]
	assert.False(t, ok, "input map must not be modified")
}

func TestWithEnvironmentalDefaults(t *testing.T) {
	in := map[Metric]Value{
		AttackVector: "N", AttackComplexity: "L", PrivilegesRequired: "N",
		UserInteraction: "N", Scope: "U",
		Confidentiality: "H", Integrity: "L", Availability: "N",
		ModifiedConfidentiality: "N",
	}
	out, err := withEnvironmentalDefaults(in)
	require.NoError(t, err)

	// Explicit value wins over inheritance.
	assert.Equal(t, Value("N"), out[ModifiedConfidentiality])
	// NotDefined Modified metrics inherit their Base counterpart.
	assert.Equal(t, Value("L"), out[ModifiedIntegrity])
	assert.Equal(t, Value("N"), out[ModifiedAttackVector])
	assert.Equal(t, ScopeUnchanged, out[ModifiedScope])
	// Requirements have no counterpart and stay NotDefined.
	assert.Equal(t, NotDefined, out[ConfidentialityRequirement])

	_, ok := in[ModifiedIntegrity]
	assert.False(t, ok, "input map must not be modified")
}

func TestISSPrimitive(t *testing.T) {
	v, err := Validate(baseVector)
	require.NoError(t, err)

	iss, err := ISS(v.Metrics)
	require.NoError(t, err)
	assert.InDelta(t, 0.914816, iss, 1e-9)

	impact, err := ImpactSubScore(v.Metrics)
	require.NoError(t, err)
	assert.InDelta(t, 6.42*iss, impact, 1e-9)

	exploitability, err := ExploitabilitySubScore(v.Metrics)
	require.NoError(t, err)
	assert.InDelta(t, 8.22*0.85*0.77*0.85*0.85, exploitability, 1e-9)
}
