package installer

import (
	"fmt"
	"os"

	"github.com/xucongyong/claude-notify/internal/claude"
	"github.com/xucongyong/claude-notify/internal/constants"
	"github.com/xucongyong/claude-notify/internal/logging"
	"github.com/xucongyong/claude-notify/internal/notifier"
)

// UninstallResult describes a completed Uninstall.
type UninstallResult struct {
	BundleRemoved  bool
	ScriptsRemoved int
	IconRemoved    bool
	// HooksRemoved is the number of hook groups stripped from settings.
	HooksRemoved int
	// SettingsWritten is false when settings were missing or unparseable.
	SettingsWritten bool
	Warnings        int
}

// Uninstall removes everything Install put in place. Settings keys other
// than this tool's hook entries are left alone.
func (in *Installer) Uninstall() (*UninstallResult, error) {
	log := logging.Get("installer")
	cfg := in.Config
	res := &UninstallResult{}
	warn := func(format string, args ...interface{}) {
		res.Warnings++
		in.Out.Warn(format, args...)
	}

	in.Out.Heading("Removing Claude Code notifications")

	removed, err := in.bundle().Remove()
	if err != nil {
		in.Out.Fail("Could not remove %s", cfg.NotifierApp)
		in.Out.Detail(err.Error())
		return nil, reported(err)
	}
	res.BundleRemoved = removed
	if removed {
		in.Out.OK("Removed %s", cfg.NotifierApp)
	} else {
		in.Out.Info("No ClaudeNotifier.app to remove")
	}

	for _, name := range constants.HookScripts() {
		ok, err := removeFile(cfg.ScriptPath(name))
		if err != nil {
			in.Out.Fail("Could not remove %s", cfg.ScriptPath(name))
			in.Out.Detail(err.Error())
			return nil, reported(err)
		}
		if ok {
			res.ScriptsRemoved++
		}
	}
	in.Out.OK("Removed %d hook %s", res.ScriptsRemoved, plural(res.ScriptsRemoved, "script", "scripts"))

	res.IconRemoved, err = removeFile(cfg.IconPath())
	if err != nil {
		in.Out.Fail("Could not remove %s", cfg.IconPath())
		in.Out.Detail(err.Error())
		return nil, reported(err)
	}
	if res.IconRemoved {
		in.Out.OK("Removed icon")
	}

	if err := in.stripSettings(res, warn); err != nil {
		return nil, err
	}

	if in.GOOS == constants.SupportedOS {
		if err := notifier.ResetPermission(in.Runner); err != nil {
			log.Warn().Err(err).Msg("tccutil reset failed")
			warn("Could not reset the notification permission")
			in.Out.Detail(notifier.ManualPermissionSteps()...)
		} else {
			in.Out.OK("Reset notification permission for %s", constants.NotifierBundleID)
		}
	} else {
		log.Debug().Str("goos", in.GOOS).Msg("skipping permission reset")
	}

	in.Out.Println()
	in.Out.OK("Claude Code notifications removed")
	in.Out.Println("To reinstall, run:")
	in.Out.Detail("claude-notify")
	return res, nil
}

func (in *Installer) stripSettings(res *UninstallResult, warn func(string, ...interface{})) error {
	path := in.Config.SettingsPath
	doc, state, err := claude.LoadSettings(path)
	if err != nil {
		in.Out.Fail("Could not read %s", path)
		in.Out.Detail(err.Error())
		return reported(err)
	}

	switch state {
	case claude.SettingsMissing:
		in.Out.Info("No %s; no hooks to remove", path)
		return nil
	case claude.SettingsInvalid:
		log := logging.Get("installer")
		log.Warn().Str("path", path).Msg("settings is not valid JSON")
		warn("%s is not valid JSON; leaving it untouched", path)
		in.Out.Detail("Remove the notification hooks from it by hand.")
		return nil
	}

	n, err := claude.Strip(doc, constants.HookScripts())
	if err != nil {
		in.Out.Fail("Could not update %s", path)
		in.Out.Detail(err.Error())
		return reported(err)
	}
	if err := claude.SaveSettings(path, doc); err != nil {
		in.Out.Fail("Could not write %s", path)
		in.Out.Detail(err.Error())
		return reported(err)
	}
	res.HooksRemoved = n
	res.SettingsWritten = true
	in.Out.OK("Removed %d hook %s from %s", n, plural(n, "entry", "entries"), path)
	return nil
}

// removeFile deletes path, reporting false when it did not exist.
func removeFile(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	}
	return false, fmt.Errorf("removing %s: %w", path, err)
}
