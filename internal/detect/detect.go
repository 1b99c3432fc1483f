// Package detect discovers which source files a coverage run should be
// scoped to, usually by asking git what changed relative to a base branch.
package detect

import (
	"errors"
	"fmt"
	"io/fs"
	osexec "os/exec"
	"path/filepath"
	"strings"

	"github.com/diffcov/diffcov/internal/exec"
	"github.com/diffcov/diffcov/internal/logger"
)

// ErrVcsUnavailable signals that no version-control context could be
// established (not a repository, or git itself is missing). Callers check it
// with errors.Is; the message-sniffing needed to recognize git's output
// happens here and nowhere else.
var ErrVcsUnavailable = errors.New("version control unavailable")

// Detector produces the list of target files for a coverage run.
type Detector interface {
	// TargetFiles returns the source files changed relative to baseBranch,
	// resolved from root. It returns ErrVcsUnavailable when no repository
	// context exists; any other error is a genuine failure.
	TargetFiles(baseBranch, root string) ([]string, error)
}

// GitDetector asks git for changed files, degrading through three rungs:
// committed diff against the base branch, uncommitted diff against HEAD,
// and finally every source file under the package root.
type GitDetector struct {
	exec       exec.Executor
	extensions []string
}

// NewGitDetector creates a detector that shells out through executor and
// considers files with the given extensions (e.g. ".dart") to be source
// files when walking the package root.
func NewGitDetector(executor exec.Executor, extensions []string) *GitDetector {
	return &GitDetector{exec: executor, extensions: extensions}
}

// TargetFiles implements Detector.
func (d *GitDetector) TargetFiles(baseBranch, root string) ([]string, error) {
	committed, err := d.diffNames(root, baseBranch+"...HEAD")
	if err != nil {
		return nil, err
	}
	if len(committed) > 0 {
		logger.Debug("[detect] %d file(s) changed vs %s", len(committed), baseBranch)
		return committed, nil
	}

	uncommitted, err := d.diffNames(root, "HEAD")
	if err != nil {
		return nil, err
	}
	if len(uncommitted) > 0 {
		logger.Debug("[detect] no committed changes, %d uncommitted file(s)", len(uncommitted))
		return uncommitted, nil
	}

	logger.Debug("[detect] no diff against %s, walking %s for source files", baseBranch, root)
	return d.walkSources(root)
}

// diffNames runs `git diff --name-only <spec>` and splits the output.
func (d *GitDetector) diffNames(root, spec string) ([]string, error) {
	result, err := d.exec.Run(root, "git", "diff", "--name-only", spec)
	if err != nil {
		if errors.Is(err, osexec.ErrNotFound) {
			return nil, fmt.Errorf("%w: git executable not found", ErrVcsUnavailable)
		}
		return nil, fmt.Errorf("failed to run git diff: %w", err)
	}
	if result.ExitCode != 0 {
		stderr := strings.TrimSpace(result.Stderr)
		if isNotARepository(stderr) {
			return nil, fmt.Errorf("%w: %s", ErrVcsUnavailable, stderr)
		}
		return nil, fmt.Errorf("git diff --name-only %s failed: %s", spec, stderr)
	}

	var files []string
	for _, line := range strings.Split(result.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// isNotARepository recognizes git's "fatal: not a git repository" family of
// messages. This is the only place error text is inspected.
func isNotARepository(stderr string) bool {
	return strings.Contains(strings.ToLower(stderr), "not a git repository")
}

// walkSources collects every file under root whose extension matches the
// configured source extensions, relative to root. Hidden directories are
// skipped.
func (d *GitDetector) walkSources(root string) ([]string, error) {
	if root == "" {
		root = "."
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.isSourceFile(name) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk package root: %w", err)
	}
	return files, nil
}

func (d *GitDetector) isSourceFile(name string) bool {
	for _, ext := range d.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
