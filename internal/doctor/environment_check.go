package doctor

import (
	"fmt"

	"github.com/xucongyong/claude-notify/internal/constants"
	"github.com/xucongyong/claude-notify/internal/deps"
)

// PlatformCheck warns when notifications cannot be delivered on this OS.
type PlatformCheck struct {
	BaseCheck
}

// NewPlatformCheck creates a new platform check.
func NewPlatformCheck() *PlatformCheck {
	return &PlatformCheck{
		BaseCheck: BaseCheck{
			CheckName:        "platform",
			CheckDescription: "Check the operating system can show notifications",
			CheckCategory:    CategoryEnvironment,
		},
	}
}

// Run compares the running platform with macOS.
func (c *PlatformCheck) Run(ctx *CheckContext) *CheckResult {
	if ctx.GOOS == constants.SupportedOS {
		return &CheckResult{Name: c.Name(), Status: StatusOK, Message: "macOS"}
	}
	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusWarning,
		Message: fmt.Sprintf("%s is not supported; hooks will run but show nothing", ctx.GOOS),
	}
}

// InterpreterCheck verifies the hook interpreter resolves on PATH.
type InterpreterCheck struct {
	BaseCheck
}

// NewInterpreterCheck creates a new interpreter check.
func NewInterpreterCheck() *InterpreterCheck {
	return &InterpreterCheck{
		BaseCheck: BaseCheck{
			CheckName:        "interpreter",
			CheckDescription: "Check the hook script interpreter is installed",
			CheckCategory:    CategoryEnvironment,
		},
	}
}

// Run looks the interpreter up on PATH.
func (c *InterpreterCheck) Run(ctx *CheckContext) *CheckResult {
	name := ctx.Config.Interpreter
	if ctx.Checker.Available(name) {
		return &CheckResult{Name: c.Name(), Status: StatusOK, Message: name + " found"}
	}

	req := deps.Interpreter(name)
	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusError,
		Message: name + " not found in PATH",
		Details: req.Hint,
		FixHint: "claude-notify --auto-install",
	}
}
