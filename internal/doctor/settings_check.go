package doctor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xucongyong/claude-notify/internal/claude"
	"github.com/xucongyong/claude-notify/internal/constants"
)

// SettingsHooksCheck verifies settings.json registers every hook with the
// current hooks directory.
type SettingsHooksCheck struct {
	FixableCheck
}

// NewSettingsHooksCheck creates a new settings check.
func NewSettingsHooksCheck() *SettingsHooksCheck {
	return &SettingsHooksCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "settings-hooks",
				CheckDescription: "Check settings.json registers the notification hooks",
				CheckCategory:    CategorySettings,
			},
		},
	}
}

// Run loads settings and looks for each expected command. Commands that
// name one of the scripts at some other path are reported as stale.
func (c *SettingsHooksCheck) Run(ctx *CheckContext) *CheckResult {
	cfg := ctx.Config
	doc, state, err := claude.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return &CheckResult{Name: c.Name(), Status: StatusError, Message: err.Error()}
	}
	switch state {
	case claude.SettingsMissing:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: cfg.SettingsPath + " not found",
			FixHint: reinstallHint,
		}
	case claude.SettingsInvalid:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: cfg.SettingsPath + " is not valid JSON",
			FixHint: "Fix the file by hand, or run claude-notify to replace it",
		}
	}

	var missing, stale []string
	for _, ev := range claude.BuildEntries(cfg.HooksDir, cfg.Interpreter) {
		registered := doc.Commands(ev.Event)
		for _, g := range ev.Groups {
			want := claude.NormalizeCommand(g.PrimaryCommand())
			found := false
			for _, cmd := range registered {
				if claude.NormalizeCommand(cmd) == want {
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, ev.Event)
			}
		}
		for _, cmd := range registered {
			if dir, ok := scriptDir(cmd); ok && filepath.Clean(dir) != filepath.Clean(cfg.HooksDir) {
				stale = append(stale, fmt.Sprintf("%s: %s", ev.Event, cmd))
			}
		}
	}

	switch {
	case len(missing) > 0:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: fmt.Sprintf("%d hooks not registered", len(missing)),
			Details: missing,
			FixHint: reinstallHint,
		}
	case len(stale) > 0:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "hooks registered from another directory as well",
			Details: stale,
			FixHint: "claude-notify uninstall && claude-notify",
		}
	}
	return &CheckResult{Name: c.Name(), Status: StatusOK, Message: "all hooks registered"}
}

// Fix registers the missing hooks the way an install does. Stale entries
// from another directory are left for uninstall to remove.
func (c *SettingsHooksCheck) Fix(ctx *CheckContext) error {
	cfg := ctx.Config
	doc, state, err := claude.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}
	if state == claude.SettingsInvalid {
		return ErrSettingsInvalid
	}
	added, err := claude.Merge(doc, claude.BuildEntries(cfg.HooksDir, cfg.Interpreter))
	if err != nil {
		return err
	}
	if added == 0 && state == claude.SettingsLoaded {
		return nil
	}
	return claude.SaveSettings(cfg.SettingsPath, doc)
}

// scriptDir returns the directory of the hook script a command runs, if it
// runs one. The path starts after the nearest quote before the script name,
// or after the nearest space when the path is unquoted.
func scriptDir(cmd string) (string, bool) {
	for _, s := range constants.HookScripts() {
		i := strings.Index(cmd, s)
		if i < 0 {
			continue
		}
		end := i + len(s)
		start := strings.LastIndexAny(cmd[:i], `"'`)
		if start < 0 {
			start = strings.LastIndex(cmd[:i], " ")
		}
		return filepath.Dir(cmd[start+1 : end]), true
	}
	return "", false
}
