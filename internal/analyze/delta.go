package analyze

import "github.com/diffcov/diffcov/internal/lcov"

// LineDelta is the signed hit-count change of one line between two
// snapshots. New marks lines absent from the baseline.
type LineDelta struct {
	Number int  `json:"line"`
	Diff   int  `json:"diff"`
	New    bool `json:"new,omitempty"`
}

// FileDelta collects the per-line changes of one file. New marks files
// absent from the baseline.
type FileDelta struct {
	Path  string      `json:"path"`
	New   bool        `json:"new,omitempty"`
	Lines []LineDelta `json:"lines"`
}

// Delta describes how coverage moved between a baseline and a current
// snapshot. Only files and lines present in the current snapshot appear.
type Delta struct {
	Files []FileDelta `json:"files"`
}

// Diff compares current against baseline. Every line of every file in
// current is reported with its hit-count change; lines and files the
// baseline never saw count from zero and are flagged as new.
func Diff(current, baseline *lcov.Report) *Delta {
	base := indexHits(baseline)

	d := &Delta{}
	for _, f := range current.Files {
		baseLines, knownFile := base[f.Path]

		fd := FileDelta{Path: f.Path, New: !knownFile}
		for _, l := range f.Lines {
			baseHits, knownLine := baseLines[l.Number]
			fd.Lines = append(fd.Lines, LineDelta{
				Number: l.Number,
				Diff:   l.HitCount - baseHits,
				New:    !knownLine,
			})
		}
		d.Files = append(d.Files, fd)
	}
	return d
}

// indexHits flattens a report into path -> line -> hits. Duplicate records
// for the same path collapse to the highest hit count per line.
func indexHits(r *lcov.Report) map[string]map[int]int {
	idx := make(map[string]map[int]int, len(r.Files))
	for _, f := range r.Files {
		lines := idx[f.Path]
		if lines == nil {
			lines = make(map[int]int, len(f.Lines))
			idx[f.Path] = lines
		}
		for _, l := range f.Lines {
			if prev, ok := lines[l.Number]; !ok || l.HitCount > prev {
				lines[l.Number] = l.HitCount
			}
		}
	}
	return idx
}
