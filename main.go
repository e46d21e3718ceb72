package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"trivy-plugin-cvss-rescore/internal/flags"
	"trivy-plugin-cvss-rescore/internal/logging"
	"trivy-plugin-cvss-rescore/internal/report"
)

func main() {
	ro := flags.Parse()
	logging.InitLogger(ro.Debug)
	inputData, err := io.ReadAll(os.Stdin)
	if err != nil {
		panic(fmt.Errorf("failed to read from stdin: %w", err))
	}
	var reportData map[string]any
	if err := json.Unmarshal(inputData, &reportData); err != nil {
		panic(fmt.Errorf("failed to parse JSON: %w", err))
	}
	processReport(reportData, ro)
	output, _ := json.MarshalIndent(reportData, "", "  ")
	fmt.Println(string(output))
}

func processReport(reportData map[string]any, ro flags.RunOptions) {
	results, _ := reportData["Results"].([]any)
	if results == nil {
		return
	}
	for _, r := range results {
		resa, _ := r.(map[string]any)
		if resa == nil {
			continue
		}
		vulns, _ := resa["Vulnerabilities"].([]any)
		for _, v := range vulns {
			vuln, _ := v.(map[string]any)
			if vuln != nil {
				report.ProcessVuln(vuln, ro)
			}
		}
	}
}
