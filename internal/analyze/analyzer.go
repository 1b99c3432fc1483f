// Package analyze drives a single coverage analysis run: discover target
// files, parse the tracefile, filter to the targets, and fall back to the
// full corpus when scoping is impossible.
package analyze

import (
	"errors"
	"fmt"

	"github.com/diffcov/diffcov/internal/detect"
	"github.com/diffcov/diffcov/internal/lcov"
	"github.com/diffcov/diffcov/internal/logger"
	"github.com/diffcov/diffcov/internal/match"
)

// Scope states which subset of the corpus a result covers.
type Scope int

const (
	// ScopeFullCorpus means the report covers every file in the tracefile.
	ScopeFullCorpus Scope = iota
	// ScopeTargets means the report was filtered to the detected targets.
	ScopeTargets
)

func (s Scope) String() string {
	if s == ScopeTargets {
		return "targets"
	}
	return "full-corpus"
}

// Result is the outcome of an analysis run. Scope tells the caller whether
// the run was narrowed to target files or silently broadened to the full
// corpus; broadening is informational, never an error.
type Result struct {
	Report  *lcov.Report
	Scope   Scope
	Targets []string
}

// Analyzer runs the coverage pipeline against a file-discovery detector.
type Analyzer struct {
	detector detect.Detector
}

// New creates an Analyzer using the given detector.
func New(detector detect.Detector) *Analyzer {
	return &Analyzer{detector: detector}
}

// Run executes the decision ladder for one analysis. Each branch is
// terminal:
//
//  1. no base branch configured -> full corpus
//  2. detector reports version control unavailable -> full corpus
//  3. non-empty targets -> parse and filter; if nothing matched -> full
//     corpus, otherwise the filtered report
//  4. empty target list -> full corpus
//
// Errors other than detect.ErrVcsUnavailable propagate unchanged.
func (a *Analyzer) Run(coveragePath, baseBranch, root string) (*Result, error) {
	if baseBranch == "" {
		return a.fullCorpus(coveragePath)
	}

	targets, err := a.detector.TargetFiles(baseBranch, root)
	if err != nil {
		if errors.Is(err, detect.ErrVcsUnavailable) {
			logger.Info("version control unavailable, reporting full coverage")
			return a.fullCorpus(coveragePath)
		}
		return nil, err
	}

	if len(targets) == 0 {
		logger.Info("no changed files vs %s, reporting full coverage", baseBranch)
		return a.fullCorpus(coveragePath)
	}

	report, err := lcov.ParseFile(coveragePath)
	if err != nil {
		return nil, err
	}

	filtered := match.FilterByTargets(report, targets)
	if len(filtered.Files) == 0 {
		logger.Info("none of the %d target file(s) appear in %s, reporting full coverage",
			len(targets), coveragePath)
		return &Result{Report: report, Scope: ScopeFullCorpus}, nil
	}

	logger.Debug("[analyze] %d of %d coverage record(s) matched the targets",
		len(filtered.Files), len(report.Files))
	return &Result{Report: filtered, Scope: ScopeTargets, Targets: targets}, nil
}

func (a *Analyzer) fullCorpus(coveragePath string) (*Result, error) {
	report, err := lcov.ParseFile(coveragePath)
	if err != nil {
		return nil, err
	}
	return &Result{Report: report, Scope: ScopeFullCorpus}, nil
}

// ErrFileNotFound is returned by FileCoverage when a path has no coverage
// record.
var ErrFileNotFound = errors.New("no coverage recorded for file")

// FileCoverage looks up the coverage record for a single path, applying the
// same matching rules as target filtering.
func FileCoverage(r *lcov.Report, path string) (*lcov.File, error) {
	filtered := match.FilterByTargets(r, []string{path})
	if len(filtered.Files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f := filtered.Files[0]
	return &f, nil
}
