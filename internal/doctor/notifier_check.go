package doctor

import (
	"github.com/xucongyong/claude-notify/internal/notifier"
	"github.com/xucongyong/claude-notify/internal/util"
)

// NotifierCheck verifies ClaudeNotifier.app is complete when it is enabled.
type NotifierCheck struct {
	BaseCheck
}

// NewNotifierCheck creates a new notifier bundle check.
func NewNotifierCheck() *NotifierCheck {
	return &NotifierCheck{
		BaseCheck: BaseCheck{
			CheckName:        "notifier-app",
			CheckDescription: "Check ClaudeNotifier.app is built",
			CheckCategory:    CategoryNotifier,
		},
	}
}

// Run looks for the bundle's executable and Info.plist.
func (c *NotifierCheck) Run(ctx *CheckContext) *CheckResult {
	b := notifier.Bundle{Dir: ctx.Config.NotifierApp}
	if !ctx.Config.BuildNotifier {
		return &CheckResult{Name: c.Name(), Status: StatusOK, Message: "disabled"}
	}
	if !b.Exists() {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "not installed; hooks fall back to other notifiers",
			FixHint: reinstallHint,
		}
	}

	var broken []string
	for _, p := range []string{b.Executable(), b.PlistPath()} {
		if !util.FileExists(p) {
			broken = append(broken, p+" missing")
		}
	}
	if len(broken) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "bundle is incomplete",
			Details: broken,
			FixHint: reinstallHint,
		}
	}
	return &CheckResult{Name: c.Name(), Status: StatusOK, Message: b.Dir}
}
