package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/diffcov/diffcov/internal/analyze"
	"github.com/diffcov/diffcov/internal/config"
	"github.com/diffcov/diffcov/internal/detect"
	"github.com/diffcov/diffcov/internal/exec"
	"github.com/diffcov/diffcov/internal/llm"
	"github.com/diffcov/diffcov/internal/logger"
	"github.com/diffcov/diffcov/internal/report"
)

// NewReportCommand creates the "report" subcommand.
func NewReportCommand() *cobra.Command {
	var (
		coveragePath string
		baseBranch   string
		packageRoot  string
		formats      []string
		outputDir    string
		withSummary  bool
		logLevel     string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a coverage report for changed files.",
		Long: `Generate a coverage report scoped to the files changed relative to a
base branch.

This command:
  1. Asks git which files changed vs the base branch
  2. Parses the LCOV tracefile
  3. Filters the coverage data to the changed files
  4. Renders the requested report formats

When no base branch is configured, the repository is not under version
control, or no changed file appears in the tracefile, the report covers the
full corpus instead and says so.

Configuration:
  Default values are loaded from configs/diffcov.yaml.
  Command line flags override the config file values.

Examples:
  # Report against the config-file defaults
  diffcov report

  # Coverage of files changed vs main, as console + markdown
  diffcov report --base-branch main --format console --format markdown

  # Full-corpus report with an AI summary
  diffcov report --coverage coverage/lcov.info --with-summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if !cmd.Flags().Changed("coverage") {
				coveragePath = cfg.CoveragePath
			}
			if !cmd.Flags().Changed("base-branch") {
				baseBranch = cfg.BaseBranch
			}
			if !cmd.Flags().Changed("root") {
				packageRoot = cfg.PackageRoot
			}
			if !cmd.Flags().Changed("format") {
				formats = cfg.Report.Formats
			}
			if !cmd.Flags().Changed("output-dir") {
				outputDir = cfg.Report.OutputDir
			}
			if !cmd.Flags().Changed("with-summary") {
				withSummary = cfg.LLM.Enabled
			}
			if !cmd.Flags().Changed("log-level") {
				logLevel = cfg.LogLevel
			}

			logger.SetLevel(logLevel)
			if cfg.LogFile != "" {
				logger.SetFile(cfg.LogFile)
			}

			return runReport(cfg, coveragePath, baseBranch, packageRoot, formats, outputDir, withSummary)
		},
	}

	cmd.Flags().StringVar(&coveragePath, "coverage", "coverage/lcov.info", "Path to the LCOV tracefile")
	cmd.Flags().StringVar(&baseBranch, "base-branch", "", "Base branch to diff against (empty = full corpus)")
	cmd.Flags().StringVar(&packageRoot, "root", "", "Package root the target paths are resolved from")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"console"}, "Report formats: console, markdown, json")
	cmd.Flags().StringVar(&outputDir, "output-dir", "coverage_report", "Directory for markdown/json reports")
	cmd.Flags().BoolVar(&withSummary, "with-summary", false, "Add an AI-written summary to the report")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}

func runReport(cfg *config.Config, coveragePath, baseBranch, packageRoot string, formats []string, outputDir string, withSummary bool) error {
	detector := detect.NewGitDetector(exec.NewCommandExecutor(), cfg.SourceExtensions)
	analyzer := analyze.New(detector)

	result, err := analyzer.Run(coveragePath, baseBranch, packageRoot)
	if err != nil {
		return err
	}

	if baseBranch != "" && result.Scope == analyze.ScopeFullCorpus {
		fmt.Printf("Scope broadened to the full corpus (%d files).\n", len(result.Report.Files))
	}

	var summary string
	if withSummary {
		summarizer, err := llm.New(cfg.LLM)
		if err != nil {
			logger.Warn("AI summary disabled: %v", err)
		} else {
			summary, err = summarizer.Summarize(report.RenderText(result.Report))
			if err != nil {
				// The report is still useful without prose around it.
				logger.Warn("AI summary failed: %v", err)
				summary = ""
			}
		}
	}

	var g errgroup.Group
	for _, format := range formats {
		switch format {
		case "console":
			fmt.Printf("\n%s\n", report.RenderConsole(result.Report))
			if summary != "" {
				fmt.Printf("%s\n", summary)
			}
		case "markdown":
			g.Go(func() error {
				path, err := report.NewMarkdownReporter(outputDir).Save(
					result.Report, result.Scope.String(), summary)
				if err != nil {
					return err
				}
				logger.Info("markdown report written to %s", path)
				return nil
			})
		case "json":
			g.Go(func() error {
				path, err := report.NewJSONReporter(outputDir).Save(
					result.Report, result.Scope.String())
				if err != nil {
					return err
				}
				logger.Info("json report written to %s", path)
				return nil
			})
		default:
			return fmt.Errorf("unknown report format: %s", format)
		}
	}

	return g.Wait()
}
