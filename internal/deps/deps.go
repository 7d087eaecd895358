// Package deps checks for the external tools the installer relies on and,
// where a package manager can provide them, installs missing ones.
package deps

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/xucongyong/claude-notify/internal/logging"
	"github.com/xucongyong/claude-notify/internal/util"
)

// ErrMissingDependency is matched by every *MissingError.
var ErrMissingDependency = errors.New("missing dependency")

// Checker reports whether an executable resolves on the search path.
// Absence is a normal outcome, never an error.
type Checker interface {
	Available(name string) bool
}

// PathChecker resolves executables with exec.LookPath.
type PathChecker struct{}

// Available returns true if name is found in PATH.
func (PathChecker) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Requirement describes one external tool the installer needs.
type Requirement struct {
	// Name is the executable looked up on PATH.
	Name string
	// Formula is the Homebrew formula that provides Name, empty if none.
	Formula string
	// Hint lines tell the operator how to install it by hand.
	Hint []string
}

// Interpreter returns the requirement for the hook script interpreter.
func Interpreter(name string) Requirement {
	return Requirement{
		Name:    name,
		Formula: formulaFor(name),
		Hint:    []string{"Install Python 3 and try again: https://www.python.org/downloads/"},
	}
}

// Clang is the compiler used to build ClaudeNotifier.
var Clang = Requirement{
	Name: "clang",
	Hint: []string{"Install Xcode Command Line Tools:", "  xcode-select --install"},
}

func formulaFor(name string) string {
	switch name {
	case "python3", "python":
		return "python3"
	}
	return ""
}

// MissingError reports a requirement that is not on PATH and could not be
// installed.
type MissingError struct {
	Requirement Requirement
	// InstallErr is set when an automatic install was attempted and failed.
	InstallErr error
}

func (e *MissingError) Error() string {
	if e.InstallErr != nil {
		return fmt.Sprintf("%s not found in PATH (brew install %s failed: %v)",
			e.Requirement.Name, e.Requirement.Formula, e.InstallErr)
	}
	return fmt.Sprintf("%s not found in PATH", e.Requirement.Name)
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissingDependency
}

// Resolver checks requirements and optionally installs missing ones through
// Homebrew.
type Resolver struct {
	Checker     Checker
	Runner      util.Runner
	AutoInstall bool
}

// Ensure returns nil if req is available, installing it first when allowed.
// installed reports whether an install ran and succeeded.
func (r Resolver) Ensure(req Requirement) (installed bool, err error) {
	logger := logging.Get("deps")

	if r.Checker.Available(req.Name) {
		logger.Debug().Str("tool", req.Name).Msg("found")
		return false, nil
	}

	if !r.AutoInstall || req.Formula == "" || !r.Checker.Available("brew") {
		logger.Warn().Str("tool", req.Name).Msg("not found and cannot be installed automatically")
		return false, &MissingError{Requirement: req}
	}

	args := []string{"install", req.Formula}
	logging.LogCommand(logger, "brew", args)
	if err := r.Runner.Run("brew", args...); err != nil {
		return false, &MissingError{Requirement: req, InstallErr: err}
	}

	// brew may link into a directory that is not on PATH yet.
	if !r.Checker.Available(req.Name) {
		return false, &MissingError{Requirement: req}
	}
	return true, nil
}
