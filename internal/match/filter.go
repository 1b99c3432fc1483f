// Package match selects coverage records that correspond to a set of target
// file paths, bridging the path-shape differences between what a coverage
// tool records (often absolute) and what a diff reports (repo-relative).
package match

import (
	"path"
	"strings"

	"github.com/diffcov/diffcov/internal/lcov"
)

// Normalize canonicalizes a path for comparison: backslashes become forward
// slashes and a single leading "./" or "/" is stripped.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "./") {
		p = p[2:]
	} else if strings.HasPrefix(p, "/") {
		p = p[1:]
	}
	return p
}

// Matches reports whether a recorded coverage path corresponds to a target
// path. Both arguments must already be normalized. The rules form a
// disjunction, loosest last:
//
//  1. exact match
//  2. recorded path is deeper than the target (absolute vs package-relative)
//  3. target is deeper than the recorded path
//  4. same basename and the recorded path contains the target with a leading
//     "lib/" stripped
//
// Rule 4 bridges sub-package roots in monorepos. It is knowingly permissive:
// two unrelated files sharing a basename can match. Downstream behavior
// depends on it, so it stays as-is.
func Matches(recorded, target string) bool {
	if recorded == target {
		return true
	}
	if strings.HasSuffix(recorded, target) {
		return true
	}
	if strings.HasSuffix(target, recorded) {
		return true
	}
	if path.Base(recorded) == path.Base(target) &&
		strings.Contains(recorded, strings.TrimPrefix(target, "lib/")) {
		return true
	}
	return false
}

// FilterByTargets returns a new report containing only the file records that
// match at least one target. The input is never mutated and the result's
// summary is recomputed from the matched subset.
//
// An empty target list means "nothing of interest", not "everything": the
// result is an empty report with a zero summary.
func FilterByTargets(r *lcov.Report, targets []string) *lcov.Report {
	if len(targets) == 0 {
		return lcov.NewReport(nil)
	}

	normalized := make([]string, len(targets))
	for i, t := range targets {
		normalized[i] = Normalize(t)
	}

	var matched []lcov.File
	for _, f := range r.Files {
		recorded := Normalize(f.Path)
		for _, t := range normalized {
			if Matches(recorded, t) {
				matched = append(matched, f)
				break
			}
		}
	}

	return lcov.NewReport(matched)
}
