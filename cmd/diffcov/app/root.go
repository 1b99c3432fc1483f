package app

import (
	"github.com/spf13/cobra"
)

// NewDiffcovCommand creates the root command for the diffcov tool.
func NewDiffcovCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diffcov",
		Short: "Coverage reports scoped to changed files.",
		Long: `Diffcov parses an LCOV tracefile and reports coverage for the files
changed relative to a base branch, falling back to the full corpus when no
change scope can be established.`,
	}

	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewDiffCommand())
	cmd.AddCommand(NewFileCommand())

	return cmd
}
