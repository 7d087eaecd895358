package doctor

import (
	"fmt"
	"os"

	"github.com/xucongyong/claude-notify/internal/constants"
)

const reinstallHint = "Run claude-notify to reinstall"

// ScriptsCheck verifies every hook script is installed and executable.
type ScriptsCheck struct {
	FixableCheck
}

// NewScriptsCheck creates a new hook script check.
func NewScriptsCheck() *ScriptsCheck {
	return &ScriptsCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "hook-scripts",
				CheckDescription: "Check hook scripts are installed and executable",
				CheckCategory:    CategoryFiles,
			},
		},
	}
}

// Run stats each script.
func (c *ScriptsCheck) Run(ctx *CheckContext) *CheckResult {
	var missing, notExec []string
	for _, name := range constants.HookScripts() {
		info, err := os.Stat(ctx.Config.ScriptPath(name))
		if err != nil {
			missing = append(missing, name)
			continue
		}
		if info.Mode().Perm()&0100 == 0 {
			notExec = append(notExec, name)
		}
	}

	total := len(constants.HookScripts())
	switch {
	case len(missing) > 0:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: fmt.Sprintf("%d of %d scripts missing from %s", len(missing), total, ctx.Config.HooksDir),
			Details: missing,
			FixHint: reinstallHint,
		}
	case len(notExec) > 0:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("%d scripts are not executable", len(notExec)),
			Details: notExec,
			FixHint: "Run claude-notify doctor --fix",
		}
	}
	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d scripts in %s", total, ctx.Config.HooksDir),
	}
}

// Fix restores the executable bits on installed scripts. Missing scripts
// need a reinstall.
func (c *ScriptsCheck) Fix(ctx *CheckContext) error {
	missing := 0
	for _, name := range constants.HookScripts() {
		path := ctx.Config.ScriptPath(name)
		info, err := os.Stat(path)
		if err != nil {
			missing++
			continue
		}
		if info.Mode().Perm()&0100 != 0 {
			continue
		}
		if err := os.Chmod(path, 0755); err != nil {
			return fmt.Errorf("chmod %s: %w", name, err)
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d scripts missing: %w", missing, ErrCannotFix)
	}
	return nil
}

// IconCheck verifies the notification icon is installed.
type IconCheck struct {
	BaseCheck
}

// NewIconCheck creates a new icon check.
func NewIconCheck() *IconCheck {
	return &IconCheck{
		BaseCheck: BaseCheck{
			CheckName:        "icon",
			CheckDescription: "Check the notification icon is installed",
			CheckCategory:    CategoryFiles,
		},
	}
}

// Run stats the icon.
func (c *IconCheck) Run(ctx *CheckContext) *CheckResult {
	if _, err := os.Stat(ctx.Config.IconPath()); err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "icon missing; notifications use the default icon",
			FixHint: reinstallHint,
		}
	}
	return &CheckResult{Name: c.Name(), Status: StatusOK, Message: ctx.Config.IconPath()}
}
