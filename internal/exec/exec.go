package exec

import (
	"bytes"
	"os/exec"
)

// Result holds the outcome of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs external commands. The interface exists so callers that
// shell out (the git detector, mainly) can be tested without a real binary.
type Executor interface {
	// Run executes command in dir (the process working directory when dir
	// is empty) and returns its captured output.
	Run(dir, command string, args ...string) (*Result, error)
}

// CommandExecutor runs commands on the host system.
type CommandExecutor struct{}

// NewCommandExecutor creates a new CommandExecutor.
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{}
}

// Run executes the given command and returns its result. A non-zero exit
// code is reported through Result.ExitCode, not as an error; only failures
// to start the process (command not found, bad dir) return an error.
func (e *CommandExecutor) Run(dir, command string, args ...string) (*Result, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, err
		}
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}
