package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diffcov/diffcov/internal/lcov"
)

// MarkdownReporter writes coverage reports as markdown files.
type MarkdownReporter struct {
	outputDir string
}

// NewMarkdownReporter creates a new MarkdownReporter.
func NewMarkdownReporter(outputDir string) *MarkdownReporter {
	return &MarkdownReporter{
		outputDir: outputDir,
	}
}

// Save renders the report to a timestamped markdown file and returns its
// path. scope describes what the report covers ("targets" or "full-corpus")
// and summary is an optional AI-written overview, skipped when empty.
func (r *MarkdownReporter) Save(report *lcov.Report, scope, summary string) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	reportName := fmt.Sprintf("coverage_%s.md", time.Now().Format("20060102_150405"))
	reportPath := filepath.Join(r.outputDir, reportName)

	var content string
	content += fmt.Sprintf("# Coverage Report (%s)\n\n", scope)
	content += fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC3339))

	if summary != "" {
		content += "## Summary\n\n"
		content += summary + "\n\n"
	}

	content += "## Totals\n\n"
	content += fmt.Sprintf("- Lines: %d/%d (%.1f%%)\n",
		report.Summary.LinesHit, report.Summary.LinesFound, report.Summary.LinePercentage())
	content += fmt.Sprintf("- Functions: %d/%d (%.1f%%)\n",
		report.Summary.FunctionsHit, report.Summary.FunctionsFound, report.Summary.FunctionPercentage())
	content += fmt.Sprintf("- Branches: %d/%d (%.1f%%)\n\n",
		report.Summary.BranchesHit, report.Summary.BranchesFound, report.Summary.BranchPercentage())

	content += "## Files\n\n"
	content += "| File | Lines | Line % | Branch % |\n"
	content += "| --- | --- | --- | --- |\n"
	for _, f := range report.Files {
		content += fmt.Sprintf("| %s | %d/%d | %.1f%% | %.1f%% |\n",
			f.Path, f.Summary.LinesHit, f.Summary.LinesFound,
			f.Summary.LinePercentage(), f.Summary.BranchPercentage())
	}
	content += "\n"

	uncovered := uncoveredLines(report)
	if len(uncovered) > 0 {
		content += "## Uncovered Lines\n\n"
		for _, u := range uncovered {
			content += fmt.Sprintf("- `%s`: %s\n", u.path, u.lines)
		}
		content += "\n"
	}

	if err := os.WriteFile(reportPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown report: %w", err)
	}
	return reportPath, nil
}

type uncoveredFile struct {
	path  string
	lines string
}

// uncoveredLines lists, per file, the line numbers with zero hits.
func uncoveredLines(report *lcov.Report) []uncoveredFile {
	var result []uncoveredFile
	for _, f := range report.Files {
		var lines string
		for _, l := range f.Lines {
			if l.Covered() {
				continue
			}
			if lines != "" {
				lines += ", "
			}
			lines += fmt.Sprintf("%d", l.Number)
		}
		if lines != "" {
			result = append(result, uncoveredFile{path: f.Path, lines: lines})
		}
	}
	return result
}
