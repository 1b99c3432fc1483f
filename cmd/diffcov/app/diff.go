package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diffcov/diffcov/internal/analyze"
	"github.com/diffcov/diffcov/internal/lcov"
)

// NewDiffCommand creates the "diff" subcommand.
func NewDiffCommand() *cobra.Command {
	var changedOnly bool

	cmd := &cobra.Command{
		Use:   "diff <current.info> <baseline.info>",
		Short: "Compare two coverage snapshots.",
		Long: `Compare two LCOV tracefiles and print the per-line hit-count changes as
JSON. Lines and files missing from the baseline are flagged as new.

Examples:
  # All lines of the current snapshot with their deltas
  diffcov diff coverage/lcov.info baseline/lcov.info

  # Only lines whose hit count changed or that are new
  diffcov diff coverage/lcov.info baseline/lcov.info --changed-only`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := lcov.ParseFile(args[0])
			if err != nil {
				return err
			}
			baseline, err := lcov.ParseFile(args[1])
			if err != nil {
				return err
			}

			delta := analyze.Diff(current, baseline)
			if changedOnly {
				delta = pruneUnchanged(delta)
			}

			out, err := json.MarshalIndent(delta, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal delta: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&changedOnly, "changed-only", false, "Omit lines whose hit count is unchanged")

	return cmd
}

// pruneUnchanged drops lines with a zero delta that the baseline already
// knew, and files left with no lines.
func pruneUnchanged(d *analyze.Delta) *analyze.Delta {
	pruned := &analyze.Delta{}
	for _, f := range d.Files {
		kept := analyze.FileDelta{Path: f.Path, New: f.New}
		for _, l := range f.Lines {
			if l.Diff != 0 || l.New {
				kept.Lines = append(kept.Lines, l)
			}
		}
		if len(kept.Lines) > 0 || f.New {
			pruned.Files = append(pruned.Files, kept)
		}
	}
	return pruned
}
