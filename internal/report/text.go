package report

import (
	"fmt"
	"strings"

	"github.com/diffcov/diffcov/internal/lcov"
)

// RenderText renders a plain-text digest of the report, without colors or
// table borders. Used as LLM input and anywhere ANSI output is unwanted.
func RenderText(r *lcov.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total: %d/%d lines (%.1f%%), %d/%d functions (%.1f%%), %d/%d branches (%.1f%%)\n",
		r.Summary.LinesHit, r.Summary.LinesFound, r.Summary.LinePercentage(),
		r.Summary.FunctionsHit, r.Summary.FunctionsFound, r.Summary.FunctionPercentage(),
		r.Summary.BranchesHit, r.Summary.BranchesFound, r.Summary.BranchPercentage())

	for _, f := range r.Files {
		fmt.Fprintf(&b, "%s: %d/%d lines (%.1f%%)\n",
			f.Path, f.Summary.LinesHit, f.Summary.LinesFound, f.Summary.LinePercentage())
	}

	return b.String()
}
