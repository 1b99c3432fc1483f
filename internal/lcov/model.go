// Package lcov models and parses the LCOV tracefile exchange format.
package lcov

import "encoding/json"

// Summary holds aggregate found/hit counters for lines, functions and
// branches. The zero value is a valid empty summary.
type Summary struct {
	LinesFound     int `json:"lines_found"`
	LinesHit       int `json:"lines_hit"`
	FunctionsFound int `json:"functions_found"`
	FunctionsHit   int `json:"functions_hit"`
	BranchesFound  int `json:"branches_found"`
	BranchesHit    int `json:"branches_hit"`
}

// percentage returns hit/found as a percentage, 0 when found is 0.
func percentage(hit, found int) float64 {
	if found == 0 {
		return 0
	}
	return float64(hit) / float64(found) * 100
}

// LinePercentage returns the line coverage percentage (0-100).
func (s Summary) LinePercentage() float64 {
	return percentage(s.LinesHit, s.LinesFound)
}

// FunctionPercentage returns the function coverage percentage (0-100).
func (s Summary) FunctionPercentage() float64 {
	return percentage(s.FunctionsHit, s.FunctionsFound)
}

// BranchPercentage returns the branch coverage percentage (0-100).
func (s Summary) BranchPercentage() float64 {
	return percentage(s.BranchesHit, s.BranchesFound)
}

// Add returns the field-wise sum of s and other.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		LinesFound:     s.LinesFound + other.LinesFound,
		LinesHit:       s.LinesHit + other.LinesHit,
		FunctionsFound: s.FunctionsFound + other.FunctionsFound,
		FunctionsHit:   s.FunctionsHit + other.FunctionsHit,
		BranchesFound:  s.BranchesFound + other.BranchesFound,
		BranchesHit:    s.BranchesHit + other.BranchesHit,
	}
}

// MarshalJSON emits the raw counters together with the derived percentages
// so downstream consumers do not have to recompute them.
func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	return json.Marshal(struct {
		alias
		LinePercentage     float64 `json:"line_percentage"`
		FunctionPercentage float64 `json:"function_percentage"`
		BranchPercentage   float64 `json:"branch_percentage"`
	}{
		alias:              alias(s),
		LinePercentage:     s.LinePercentage(),
		FunctionPercentage: s.FunctionPercentage(),
		BranchPercentage:   s.BranchPercentage(),
	})
}

// Line is a single per-line hit record (a DA: entry).
type Line struct {
	Number   int `json:"line"`
	HitCount int `json:"hits"`
}

// Covered reports whether the line was executed at least once.
func (l Line) Covered() bool {
	return l.HitCount > 0
}

// File is the coverage record for one source file. Path is kept exactly as
// recorded by the producing tool; it may be absolute, repo-relative or
// package-relative. Summary counters come from the record's LF/LH/FNF/FNH/
// BRF/BRH tags and are authoritative for aggregates; Lines is detail data
// and its length may legitimately disagree with Summary.LinesFound.
type File struct {
	Path    string  `json:"path"`
	Lines   []Line  `json:"lines"`
	Summary Summary `json:"summary"`
}

// Report is the parsed form of one tracefile. Files are kept in input order
// and are not deduplicated by path: duplicate SF entries stay separate
// records, each contributing to the corpus summary on its own.
type Report struct {
	Files   []File  `json:"files"`
	Summary Summary `json:"summary"`
}

// NewReport builds a Report from file records, computing the corpus summary
// as the field-wise sum over the records.
func NewReport(files []File) *Report {
	r := &Report{Files: files}
	for _, f := range files {
		r.Summary = r.Summary.Add(f.Summary)
	}
	return r
}
