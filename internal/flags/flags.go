package flags

import (
	"flag"

	"trivy-plugin-cvss-rescore/cvss3"
)

// RunOptions holds CVSS context options and feature flags for a run.
type RunOptions struct {
	Opts           cvss3.MetricsOptions
	ForceCtxRating bool
	Debug          bool
}

// Parse parses CLI flags and returns run options.
func Parse() RunOptions {
	exploitCodeMaturity := flag.String("e", "", "Exploit Code Maturity (X, U, P, F, H)")
	remediationLevel := flag.String("rl", "", "Remediation Level (X, O, T, W, U)")
	reportConf := flag.String("rc", "", "Report Confidence (X, U, R, C)")
	confReq := flag.String("cr", "", "Confidentiality Requirement (X, L, M, H)")
	integReq := flag.String("ir", "", "Integrity Requirement (X, L, M, H)")
	availReq := flag.String("ar", "", "Availability Requirement (X, L, M, H)")
	modAttackVec := flag.String("mav", "", "Modified Attack Vector (X, N, A, L, P)")
	modAttackComp := flag.String("mac", "", "Modified Attack Complexity (X, L, H)")
	modPrivReq := flag.String("mpr", "", "Modified Privileges Required (X, N, L, H)")
	modUserInt := flag.String("mui", "", "Modified User Interaction (X, N, R)")
	modScope := flag.String("ms", "", "Modified Scope (X, U, C)")
	modConf := flag.String("mc", "", "Modified Confidentiality (X, N, L, H)")
	modInteg := flag.String("mi", "", "Modified Integrity (X, N, L, H)")
	modAvail := flag.String("ma", "", "Modified Availability (X, N, L, H)")
	smartApply := flag.Bool("smart", false, "Skip Modified metrics that would rate a vulnerability above its Base metric, does not affect CR/IR/AR.")
	forceCtxRating := flag.Bool("force-ctx-rating", false, "Force a contextual rating based on what Trivy gave even if no CVSS vector exists in the report")
	debug := flag.Bool("debug", false, "Verbose per-vulnerability logging on stderr")
	flag.Parse()
	return RunOptions{
		Opts: cvss3.MetricsOptions{
			E: *exploitCodeMaturity, RL: *remediationLevel, RC: *reportConf,
			CR: *confReq, IR: *integReq, AR: *availReq,
			MAV: *modAttackVec, MAC: *modAttackComp, MPR: *modPrivReq, MUI: *modUserInt,
			MS: *modScope, MC: *modConf, MI: *modInteg, MA: *modAvail,
			Smart: *smartApply,
		},
		ForceCtxRating: *forceCtxRating,
		Debug:          *debug,
	}
}
