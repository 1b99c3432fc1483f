package detect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	osexec "os/exec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffcov/diffcov/internal/exec"
)

// scriptedExecutor replays canned results keyed by the diff spec argument.
type scriptedExecutor struct {
	results map[string]*exec.Result
	err     error
}

func (s *scriptedExecutor) Run(dir, command string, args ...string) (*exec.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	spec := args[len(args)-1]
	if r, ok := s.results[spec]; ok {
		return r, nil
	}
	return &exec.Result{ExitCode: 0}, nil
}

func TestTargetFiles(t *testing.T) {
	t.Run("committed diff wins", func(t *testing.T) {
		detector := NewGitDetector(&scriptedExecutor{results: map[string]*exec.Result{
			"main...HEAD": {Stdout: "lib/a.dart\nlib/b.dart\n"},
		}}, []string{".dart"})

		files, err := detector.TargetFiles("main", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"lib/a.dart", "lib/b.dart"}, files)
	})

	t.Run("falls back to uncommitted diff", func(t *testing.T) {
		detector := NewGitDetector(&scriptedExecutor{results: map[string]*exec.Result{
			"main...HEAD": {Stdout: "\n"},
			"HEAD":        {Stdout: "lib/c.dart\n"},
		}}, []string{".dart"})

		files, err := detector.TargetFiles("main", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"lib/c.dart"}, files)
	})

	t.Run("falls back to walking the package root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "src"), 0755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
		for _, f := range []string{
			filepath.Join("lib", "a.dart"),
			filepath.Join("lib", "src", "b.dart"),
			"README.md",
			filepath.Join(".git", "c.dart"),
		} {
			require.NoError(t, os.WriteFile(filepath.Join(root, f), []byte("x"), 0644))
		}

		detector := NewGitDetector(&scriptedExecutor{results: map[string]*exec.Result{}}, []string{".dart"})

		files, err := detector.TargetFiles("main", root)
		require.NoError(t, err)
		// Sources only, no README, nothing from hidden directories.
		assert.ElementsMatch(t, []string{"lib/a.dart", "lib/src/b.dart"}, files)
	})

	t.Run("not a repository becomes ErrVcsUnavailable", func(t *testing.T) {
		detector := NewGitDetector(&scriptedExecutor{results: map[string]*exec.Result{
			"main...HEAD": {ExitCode: 128, Stderr: "fatal: not a git repository (or any of the parent directories): .git"},
		}}, []string{".dart"})

		_, err := detector.TargetFiles("main", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrVcsUnavailable))
	})

	t.Run("missing git binary becomes ErrVcsUnavailable", func(t *testing.T) {
		detector := NewGitDetector(&scriptedExecutor{
			err: fmt.Errorf("exec: %w", osexec.ErrNotFound),
		}, []string{".dart"})

		_, err := detector.TargetFiles("main", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrVcsUnavailable))
	})

	t.Run("other git failures stay plain errors", func(t *testing.T) {
		detector := NewGitDetector(&scriptedExecutor{results: map[string]*exec.Result{
			"main...HEAD": {ExitCode: 128, Stderr: "fatal: bad revision 'main...HEAD'"},
		}}, []string{".dart"})

		_, err := detector.TargetFiles("main", "")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrVcsUnavailable))
	})
}
