package util

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs external tools to completion. Installer steps that shell out
// (dependency installs, clang, codesign, open, tccutil) go through a Runner
// so tests can substitute a fake.
type Runner interface {
	// Output runs the command and returns its trimmed stdout.
	Output(name string, args ...string) (string, error)
	// Run runs the command, discarding stdout.
	Run(name string, args ...string) error
}

// CommandError reports a command that could not be started or exited
// non-zero. Stderr holds whatever the command wrote there.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCodeOf returns the exit code carried by err, -1 if the command never
// ran, and 0 for a nil error.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.ExitCode
	}
	return -1
}

// ExecRunner runs commands with os/exec in Dir (the current directory when
// empty).
type ExecRunner struct {
	Dir string
}

// Output runs a command and returns stdout.
// If the command fails, stderr content is included in the error message.
func (r ExecRunner) Output(name string, args ...string) (string, error) {
	c := exec.Command(name, args...) //nolint:gosec // G204: callers validate args
	c.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return "", commandError(name, args, stderr.String(), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Run runs a command.
// If the command fails, stderr content is included in the error message.
func (r ExecRunner) Run(name string, args ...string) error {
	c := exec.Command(name, args...) //nolint:gosec // G204: callers validate args
	c.Dir = r.Dir

	var stderr bytes.Buffer
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return commandError(name, args, stderr.String(), err)
	}

	return nil
}

func commandError(name string, args []string, stderr string, err error) *CommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{
		Name:     name,
		Args:     args,
		ExitCode: code,
		Stderr:   strings.TrimSpace(stderr),
		Err:      err,
	}
}
