package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/xucongyong/claude-notify/internal/assets"
	"github.com/xucongyong/claude-notify/internal/claude"
	"github.com/xucongyong/claude-notify/internal/constants"
	"github.com/xucongyong/claude-notify/internal/deps"
	"github.com/xucongyong/claude-notify/internal/logging"
	"github.com/xucongyong/claude-notify/internal/notifier"
	"github.com/xucongyong/claude-notify/internal/util"
)

// InstallResult describes a completed Install.
type InstallResult struct {
	// Added is the number of hook groups merged into settings.
	Added int
	// Settings is what was found at the settings path before the merge.
	Settings claude.LoadState
	// NotifierBuilt is true when ClaudeNotifier.app was (re)built.
	NotifierBuilt bool
	// Primed is true when the notifier was launched to request permission.
	Primed bool
	// Warnings counts soft failures.
	Warnings int
}

// Install runs the install pipeline. A returned error has already been
// reported to the operator.
func (in *Installer) Install() (*InstallResult, error) {
	log := logging.Get("installer")
	cfg := in.Config
	res := &InstallResult{}
	warn := func(format string, args ...interface{}) {
		res.Warnings++
		in.Out.Warn(format, args...)
	}

	in.Out.Heading("Installing Claude Code notifications")
	if in.DryRun {
		in.Out.Info("Dry run: nothing will be written")
	}

	if in.GOOS != constants.SupportedOS {
		log.Warn().Str("goos", in.GOOS).Msg("unsupported platform")
		warn("Desktop notifications need macOS (this is %s); continuing anyway", in.GOOS)
	}

	if err := in.checkDependencies(); err != nil {
		return nil, err
	}

	if in.DryRun {
		in.Out.Info("Would copy %d hook scripts to %s", len(constants.HookScripts()), cfg.HooksDir)
		in.Out.Info("Would copy the icon to %s", cfg.IconPath())
		if cfg.BuildNotifier {
			in.Out.Info("Would build %s", cfg.NotifierApp)
		}
	} else {
		if err := in.provisionDirs(); err != nil {
			return nil, err
		}
		if err := in.copyScripts(); err != nil {
			return nil, err
		}
		if err := in.copyIcon(); err != nil {
			log.Warn().Err(err).Msg("icon not installed")
			warn("Icon not installed (%v); notifications will use the default icon", err)
		}
		if cfg.BuildNotifier {
			built, err := in.buildNotifier(warn)
			if err != nil {
				return nil, err
			}
			res.NotifierBuilt = built
		} else {
			in.Out.Info("Skipping ClaudeNotifier.app build")
		}
		if cfg.PrimePermission {
			res.Primed = in.primePermission(warn)
		}
	}

	doc, state, err := claude.LoadSettings(cfg.SettingsPath)
	if err != nil {
		in.Out.Fail("Could not read %s", cfg.SettingsPath)
		in.Out.Detail(err.Error())
		return nil, reported(err)
	}
	res.Settings = state
	switch state {
	case claude.SettingsMissing:
		in.Out.Info("No %s yet; a new one will be created", cfg.SettingsPath)
	case claude.SettingsInvalid:
		log.Warn().Str("path", cfg.SettingsPath).Msg("settings is not valid JSON")
		warn("%s is not valid JSON; starting from an empty document", cfg.SettingsPath)
		in.Out.Detail("Anything else in that file will be replaced.")
	}

	added, err := claude.Merge(doc, claude.BuildEntries(cfg.HooksDir, cfg.Interpreter))
	if err != nil {
		in.Out.Fail("Could not merge hooks into settings")
		in.Out.Detail(err.Error())
		return nil, reported(err)
	}
	res.Added = added
	log.Info().Int("added", added).Str("path", cfg.SettingsPath).Msg("merged hooks")

	if !in.DryRun {
		if err := claude.SaveSettings(cfg.SettingsPath, doc); err != nil {
			in.Out.Fail("Could not write %s", cfg.SettingsPath)
			in.Out.Detail(err.Error())
			return nil, reported(err)
		}
	}

	in.summarizeInstall(res)
	return res, nil
}

func (in *Installer) checkDependencies() error {
	cfg := in.Config
	reqs := []deps.Requirement{deps.Interpreter(cfg.Interpreter)}
	if cfg.BuildNotifier {
		reqs = append(reqs, deps.Clang)
	}

	resolver := deps.Resolver{Checker: in.Checker, Runner: in.Runner, AutoInstall: cfg.AutoInstallDeps}
	for _, req := range reqs {
		installed, err := resolver.Ensure(req)
		if err != nil {
			in.Out.Fail("%s is required but was not found", req.Name)
			var missing *deps.MissingError
			if errors.As(err, &missing) && missing.InstallErr != nil {
				in.Out.Detail(fmt.Sprintf("brew install %s failed: %v", req.Formula, missing.InstallErr))
			}
			in.Out.Detail(req.Hint...)
			if !cfg.AutoInstallDeps && req.Formula != "" && in.Checker.Available("brew") {
				in.Out.Detail("Or rerun with --auto-install to install it with Homebrew.")
			}
			return reported(err)
		}
		if installed {
			in.Out.OK("Installed %s with Homebrew", req.Name)
		} else {
			in.Out.OK("Found %s", req.Name)
		}
	}
	return nil
}

func (in *Installer) provisionDirs() error {
	for _, dir := range []string{in.Config.HooksDir, in.Config.IconsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			in.Out.Fail("Could not create %s", dir)
			in.Out.Detail(err.Error())
			return reported(fmt.Errorf("creating %s: %w", dir, err))
		}
	}
	return nil
}

func (in *Installer) copyScripts() error {
	scripts := constants.HookScripts()
	for _, name := range scripts {
		dst := in.Config.ScriptPath(name)
		if err := util.CopyFromFS(in.Assets, path.Join(assets.HooksDir, name), dst, 0755); err != nil {
			in.Out.Fail("Could not install %s", name)
			in.Out.Detail(err.Error())
			return reported(fmt.Errorf("installing %s: %w", name, err))
		}
	}
	in.Out.OK("Installed %d hook scripts in %s", len(scripts), in.Config.HooksDir)
	return nil
}

func (in *Installer) copyIcon() error {
	if _, err := fs.Stat(in.Assets, assets.IconPath); err != nil {
		return errors.New("no bundled icon")
	}
	if err := util.CopyFromFS(in.Assets, assets.IconPath, in.Config.IconPath(), 0644); err != nil {
		return err
	}
	in.Out.OK("Installed icon at %s", in.Config.IconPath())
	return nil
}

func (in *Installer) buildNotifier(warn func(string, ...interface{})) (bool, error) {
	b := notifier.Builder{
		Bundle:    in.bundle(),
		Assets:    in.Assets,
		Runner:    in.Runner,
		SoundsDir: in.SoundsDir,
	}
	res, err := b.Build(in.Config.IconPath())
	if err != nil {
		in.Out.Fail("Could not build ClaudeNotifier.app")
		in.Out.Detail(err.Error())
		if errors.Is(err, notifier.ErrCompile) {
			in.Out.Detail(deps.Clang.Hint...)
		}
		return false, reported(err)
	}

	in.Out.OK("Built %s", in.Config.NotifierApp)
	if len(res.Sounds) < len(constants.NotifierSounds) {
		in.Out.Info("Bundled %d of %d notification sounds", len(res.Sounds), len(constants.NotifierSounds))
	}
	if res.SignErr != nil {
		warn("Could not sign ClaudeNotifier.app: %v", res.SignErr)
		in.Out.Detail("macOS may not show notifications from an unsigned helper.")
	}
	return true, nil
}

func (in *Installer) primePermission(warn func(string, ...interface{})) bool {
	b := in.bundle()
	if !b.Exists() {
		warn("ClaudeNotifier.app is not installed; skipping the permission request")
		return false
	}
	if err := notifier.Prime(in.Runner, b, in.Config.IconPath()); err != nil {
		log := logging.Get("installer")
		log.Warn().Err(err).Msg("priming notifier failed")
		warn("Could not trigger the notification permission dialog")
		in.Out.Detail(notifier.ManualPermissionSteps()...)
		return false
	}
	if in.Sleep != nil {
		in.Sleep(in.Config.PrimeWait)
	}
	in.Out.OK("Requested notification permission; allow it in the macOS dialog")
	return true
}

func (in *Installer) summarizeInstall(res *InstallResult) {
	cfg := in.Config
	in.Out.Println()
	switch {
	case res.Added == 0:
		in.Out.Info("Hooks already present in %s; nothing to change", cfg.SettingsPath)
	case in.DryRun:
		in.Out.Info("Would add %d %s to %s", res.Added, plural(res.Added, "hook entry", "hook entries"), cfg.SettingsPath)
	default:
		in.Out.OK("Added %d %s to %s", res.Added, plural(res.Added, "hook entry", "hook entries"), cfg.SettingsPath)
	}

	if in.DryRun {
		return
	}
	in.Out.Println()
	in.Out.Println("Next steps:")
	in.Out.Detail("Restart Claude Code so it loads the new hooks.")
	if res.NotifierBuilt && !res.Primed {
		in.Out.Detail("Allow notifications for \"" + constants.NotifierName + "\" when macOS asks.")
	}
	in.Out.Detail("Run 'claude-notify doctor' to check the setup.")
}
