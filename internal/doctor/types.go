// Package doctor runs read-only health checks against a claude-notify
// installation.
package doctor

import (
	"github.com/xucongyong/claude-notify/internal/config"
	"github.com/xucongyong/claude-notify/internal/deps"
)

// CheckStatus is the outcome of a check.
type CheckStatus int

const (
	StatusOK CheckStatus = iota
	StatusWarning
	StatusError
)

func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	case StatusError:
		return "Error"
	}
	return "Unknown"
}

// Check categories, in report order.
const (
	CategoryEnvironment = "Environment"
	CategoryFiles       = "Files"
	CategorySettings    = "Settings"
	CategoryNotifier    = "Notifier"
)

// CategoryOrder lists categories in the order they are printed.
var CategoryOrder = []string{
	CategoryEnvironment,
	CategoryFiles,
	CategorySettings,
	CategoryNotifier,
}

// CheckContext is shared by every check in a run.
type CheckContext struct {
	Config  *config.Config
	Checker deps.Checker
	GOOS    string
}

// CheckResult is what a check reports.
type CheckResult struct {
	Name     string
	Status   CheckStatus
	Message  string
	Details  []string
	FixHint  string
	Category string
}

// Check is a single health check.
type Check interface {
	Name() string
	Description() string
	Category() string
	Run(ctx *CheckContext) *CheckResult
	CanFix() bool
	Fix(ctx *CheckContext) error
}

// BaseCheck carries the metadata every check has. Checks that only
// diagnose embed it directly.
type BaseCheck struct {
	CheckName        string
	CheckDescription string
	CheckCategory    string
}

// Name returns the check name.
func (b *BaseCheck) Name() string { return b.CheckName }

// Description returns the check description.
func (b *BaseCheck) Description() string { return b.CheckDescription }

// Category returns the check category.
func (b *BaseCheck) Category() string { return b.CheckCategory }

// CanFix reports false.
func (b *BaseCheck) CanFix() bool { return false }

// Fix returns ErrCannotFix.
func (b *BaseCheck) Fix(ctx *CheckContext) error { return ErrCannotFix }

// FixableCheck is embedded by checks that implement Fix.
type FixableCheck struct {
	BaseCheck
}

// CanFix reports true.
func (f *FixableCheck) CanFix() bool { return true }
