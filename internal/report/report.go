package report

import (
	"strings"

	"github.com/aquasecurity/trivy-db/pkg/types"

	"trivy-plugin-cvss-rescore/cvss3"
	"trivy-plugin-cvss-rescore/internal/flags"
	"trivy-plugin-cvss-rescore/internal/logging"
)

// contextualMetrics holds the natively recomputed CVSS scores and contextual
// (temporal, environmental) ratings, stored under Custom.ContextualMetrics.
type contextualMetrics struct {
	Vector              string  `json:"Vector,omitempty"`
	BaseScore           float64 `json:"BaseScore"`
	ImpactScore         float64 `json:"ImpactScore"`
	ExploitabilityScore float64 `json:"ExploitabilityScore"`
	TemporalScore       float64 `json:"TemporalScore"`
	TemporalRating      string  `json:"TemporalRating,omitempty"`
	EnvironmentalScore  float64 `json:"EnvironmentalScore"`
	EnvironmentalRating string  `json:"EnvironmentalRating,omitempty"`
	SeverityDrift       *int    `json:"SeverityDrift,omitempty"`
}

var defaultCVSSSources = []string{
	"redhat", "ghsa", "bitnami", "ubuntu", "alpine", "amazon", "oracle", "nvd",
}

func chooseCVSSSource(vuln map[string]any) string {
	cvssMap, _ := vuln["CVSS"].(map[string]any)
	if len(cvssMap) == 0 {
		return ""
	}
	severitySource, _ := vuln["SeveritySource"].(string)
	if severitySource != "" {
		if data, ok := cvssMap[severitySource].(map[string]any); ok {
			if v, _ := data["V3Vector"].(string); v != "" {
				return severitySource
			}
		}
	}
	for _, source := range defaultCVSSSources {
		if data, ok := cvssMap[source].(map[string]any); ok {
			if v, _ := data["V3Vector"].(string); v != "" {
				return source
			}
		}
	}
	for source, val := range cvssMap {
		if data, ok := val.(map[string]any); ok {
			if v, _ := data["V3Vector"].(string); v != "" {
				return source
			}
		}
	}
	return ""
}

func getCVSSVectorFromVuln(vuln map[string]any) string {
	source := chooseCVSSSource(vuln)
	if source == "" {
		return ""
	}
	cvssMap, _ := vuln["CVSS"].(map[string]any)
	data, _ := cvssMap[source].(map[string]any)
	v, _ := data["V3Vector"].(string)
	return v
}

func setContextualMetrics(vuln map[string]any, metrics contextualMetrics) {
	if vuln["Custom"] == nil {
		vuln["Custom"] = make(map[string]any)
	}
	if custom, ok := vuln["Custom"].(map[string]any); ok {
		custom["ContextualMetrics"] = metrics
	}
}

// severityDrift reports how many bands the contextual rating moved relative
// to the severity trivy reported: positive means the context rates the
// vulnerability as more severe. Ratings trivy-db cannot order return nil.
func severityDrift(ctxRating, reported string) *int {
	ctx, err := types.NewSeverity(strings.ToUpper(ctxRating))
	if err != nil {
		return nil
	}
	rep, err := types.NewSeverity(strings.ToUpper(reported))
	if err != nil {
		return nil
	}
	drift := int(ctx) - int(rep)
	return &drift
}

func rating(score float64) string {
	return strings.ToUpper(cvss3.SeverityRating(score))
}

// ProcessVuln resolves the vulnerability's CVSS v3 vector, applies the
// contextual metrics from ro, rescores the vector natively, and writes the
// result to vuln.Custom.ContextualMetrics. Vulnerabilities without a v3
// vector are left untouched unless ForceCtxRating is set.
func ProcessVuln(vuln map[string]any, ro flags.RunOptions) {
	vulnID, _ := vuln["VulnerabilityID"].(string)
	severity, _ := vuln["Severity"].(string)
	vectorStr := getCVSSVectorFromVuln(vuln)
	if vectorStr == "" {
		if ro.ForceCtxRating {
			setContextualMetrics(vuln, contextualMetrics{
				TemporalRating:      severity,
				EnvironmentalRating: severity,
			})
		}
		return
	}
	newVectorStr, err := cvss3.ApplyMetrics(vectorStr, ro.Opts)
	if err != nil {
		logging.Logger.Warnw("skipping vulnerability: cannot apply context metrics",
			"id", vulnID, "vector", vectorStr, "error", err)
		return
	}
	if newVectorStr == vectorStr {
		// ApplyMetrics passes non-3.x vectors through unchanged; if nothing
		// was appended either, a full rescore may still differ from trivy's
		// reported score, so keep going.
		if _, err := cvss3.Validate(newVectorStr); err != nil {
			logging.Logger.Debugw("skipping vulnerability: not a CVSS v3 vector",
				"id", vulnID, "vector", vectorStr)
			return
		}
	}
	baseResult, err := cvss3.BaseResult(newVectorStr)
	if err != nil {
		logging.Logger.Warnw("skipping vulnerability: base score failed",
			"id", vulnID, "vector", newVectorStr, "error", err)
		return
	}
	_, tempScore, envScore, err := cvss3.CalculateScores(newVectorStr)
	if err != nil {
		logging.Logger.Warnw("skipping vulnerability: contextual scores failed",
			"id", vulnID, "vector", newVectorStr, "error", err)
		return
	}
	envRating := rating(envScore)
	metrics := contextualMetrics{
		Vector:              newVectorStr,
		BaseScore:           baseResult.Score,
		ImpactScore:         baseResult.Impact,
		ExploitabilityScore: baseResult.Exploitability,
		TemporalScore:       tempScore,
		TemporalRating:      rating(tempScore),
		EnvironmentalScore:  envScore,
		EnvironmentalRating: envRating,
		SeverityDrift:       severityDrift(envRating, severity),
	}
	setContextualMetrics(vuln, metrics)
	logging.Logger.Debugw("rescored vulnerability",
		"id", vulnID, "vector", newVectorStr,
		"base", baseResult.Score, "temporal", tempScore, "environmental", envScore)
}
