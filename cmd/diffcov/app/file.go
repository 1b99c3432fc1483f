package app

import (
	"github.com/spf13/cobra"

	"github.com/diffcov/diffcov/internal/analyze"
	"github.com/diffcov/diffcov/internal/lcov"
)

// NewFileCommand creates the "file" subcommand.
func NewFileCommand() *cobra.Command {
	var coveragePath string

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Show line-by-line coverage for a single file.",
		Long: `Look up one source file in the tracefile, using the same path matching
rules as target filtering, and print its per-line hit counts.

Examples:
  diffcov file lib/src/parser.dart
  diffcov file lib/src/parser.dart --coverage build/lcov.info`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := lcov.ParseFile(coveragePath)
			if err != nil {
				return err
			}

			f, err := analyze.FileCoverage(report, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("%s: %d/%d lines (%.1f%%)\n",
				f.Path, f.Summary.LinesHit, f.Summary.LinesFound, f.Summary.LinePercentage())
			for _, l := range f.Lines {
				marker := " "
				if !l.Covered() {
					marker = "!"
				}
				cmd.Printf("%s %5d: %d\n", marker, l.Number, l.HitCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&coveragePath, "coverage", "coverage/lcov.info", "Path to the LCOV tracefile")

	return cmd
}
