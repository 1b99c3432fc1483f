// Package report renders parsed coverage data for humans: a console table,
// a Markdown file, and a JSON file.
package report

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/diffcov/diffcov/internal/lcov"
)

var (
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // Green
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Orange
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160")) // Red
)

// colorPercent renders a percentage with a threshold color: green at 80%+,
// orange at 50%+, red below.
func colorPercent(p float64) string {
	text := fmt.Sprintf("%.1f%%", p)
	switch {
	case p >= 80:
		return goodStyle.Render(text)
	case p >= 50:
		return warnStyle.Render(text)
	default:
		return badStyle.Render(text)
	}
}

// RenderConsole renders the report as a console table, one row per file
// record plus a totals footer.
func RenderConsole(r *lcov.Report) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Lines", "Line %", "Branch %"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, f := range r.Files {
		table.Append([]string{
			f.Path,
			fmt.Sprintf("%d/%d", f.Summary.LinesHit, f.Summary.LinesFound),
			colorPercent(f.Summary.LinePercentage()),
			colorPercent(f.Summary.BranchPercentage()),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(r.Files)),
		fmt.Sprintf("%d/%d", r.Summary.LinesHit, r.Summary.LinesFound),
		colorPercent(r.Summary.LinePercentage()),
		colorPercent(r.Summary.BranchPercentage()),
	})

	table.Render()

	return buf.String()
}
