package lcov

import (
	"fmt"
	"os"
	"strings"
)

// Encode renders the report back into tracefile text. Re-parsing the output
// yields an equal Report: every modeled field round-trips.
func (r *Report) Encode() string {
	var b strings.Builder
	for _, f := range r.Files {
		b.WriteString("SF:")
		b.WriteString(f.Path)
		b.WriteByte('\n')

		for _, l := range f.Lines {
			fmt.Fprintf(&b, "DA:%d,%d\n", l.Number, l.HitCount)
		}

		fmt.Fprintf(&b, "FNF:%d\n", f.Summary.FunctionsFound)
		fmt.Fprintf(&b, "FNH:%d\n", f.Summary.FunctionsHit)
		fmt.Fprintf(&b, "LF:%d\n", f.Summary.LinesFound)
		fmt.Fprintf(&b, "LH:%d\n", f.Summary.LinesHit)
		fmt.Fprintf(&b, "BRF:%d\n", f.Summary.BranchesFound)
		fmt.Fprintf(&b, "BRH:%d\n", f.Summary.BranchesHit)
		b.WriteString("end_of_record\n")
	}
	return b.String()
}

// WriteFile writes the encoded tracefile to disk.
func (r *Report) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Encode()), 0644); err != nil {
		return fmt.Errorf("failed to write tracefile: %w", err)
	}
	return nil
}
