//go:build integration

package detect

import (
	"errors"
	"os"
	osexec "os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffcov/diffcov/internal/exec"
)

func gitOrSkip(t *testing.T) {
	t.Helper()
	if _, err := osexec.LookPath("git"); err != nil {
		t.Skip("git not found, skipping test")
	}
}

func run(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := osexec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "command %v failed: %s", args, out)
}

func TestGitDetector_Integration_CommittedDiff(t *testing.T) {
	gitOrSkip(t)

	repo := t.TempDir()
	run(t, repo, "git", "init", "-b", "main")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "lib", "a.dart"), []byte("void main() {}\n"), 0644))
	run(t, repo, "git", "add", ".")
	run(t, repo, "git", "commit", "-m", "initial")

	run(t, repo, "git", "checkout", "-b", "feature")
	require.NoError(t, os.WriteFile(filepath.Join(repo, "lib", "b.dart"), []byte("void b() {}\n"), 0644))
	run(t, repo, "git", "add", ".")
	run(t, repo, "git", "commit", "-m", "add b")

	detector := NewGitDetector(exec.NewCommandExecutor(), []string{".dart"})
	files, err := detector.TargetFiles("main", repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/b.dart"}, files)
}

func TestGitDetector_Integration_NotARepository(t *testing.T) {
	gitOrSkip(t)

	dir := t.TempDir()
	detector := NewGitDetector(exec.NewCommandExecutor(), []string{".dart"})

	_, err := detector.TargetFiles("main", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVcsUnavailable))
}
