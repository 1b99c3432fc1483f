package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diffcov/diffcov/internal/lcov"
)

// JSONReporter writes coverage reports as JSON files with summary
// percentages and per-file/per-line detail.
type JSONReporter struct {
	outputDir string
}

// NewJSONReporter creates a new JSONReporter.
func NewJSONReporter(outputDir string) *JSONReporter {
	return &JSONReporter{
		outputDir: outputDir,
	}
}

// Save writes the report to coverage.json in the output directory and
// returns its path.
func (r *JSONReporter) Save(report *lcov.Report, scope string) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	payload := struct {
		Scope string `json:"scope"`
		*lcov.Report
	}{Scope: scope, Report: report}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	reportPath := filepath.Join(r.outputDir, "coverage.json")
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write json report: %w", err)
	}
	return reportPath, nil
}
