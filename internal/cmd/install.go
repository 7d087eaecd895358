package cmd

import (
	"github.com/spf13/cobra"
)

var (
	installUninstall   bool
	installDryRun      bool
	installNotifier    bool
	installNoNotifier  bool
	installPrime       bool
	installAutoInstall bool
)

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&installUninstall, "uninstall", false, "Remove hooks, scripts and ClaudeNotifier.app instead of installing")
	f.BoolVar(&installDryRun, "dry-run", false, "Run the checks and report what would change without writing")
	f.BoolVar(&installNotifier, "notifier", false, "Build ClaudeNotifier.app (default on macOS)")
	f.BoolVar(&installNoNotifier, "no-notifier", false, "Skip building ClaudeNotifier.app")
	f.BoolVar(&installPrime, "prime", false, "Launch ClaudeNotifier once so macOS asks for permission now")
	f.BoolVar(&installAutoInstall, "auto-install", false, "Install missing tools with Homebrew")
	rootCmd.MarkFlagsMutuallyExclusive("notifier", "no-notifier")
	rootCmd.MarkFlagsMutuallyExclusive("uninstall", "dry-run")
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("notifier") {
		cfg.BuildNotifier = installNotifier
	}
	if installNoNotifier {
		cfg.BuildNotifier = false
	}
	if flags.Changed("prime") {
		cfg.PrimePermission = installPrime
	}
	if flags.Changed("auto-install") {
		cfg.AutoInstallDeps = installAutoInstall
	}

	in := newInstaller(cfg, cmd.OutOrStdout())

	if installUninstall {
		_, err := in.Uninstall()
		return installerExit(err)
	}

	in.DryRun = installDryRun
	_, err = in.Install()
	return installerExit(err)
}
