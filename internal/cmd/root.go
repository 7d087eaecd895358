// Package cmd provides CLI commands for the claude-notify tool.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xucongyong/claude-notify/internal/config"
	"github.com/xucongyong/claude-notify/internal/installer"
	"github.com/xucongyong/claude-notify/internal/logging"
	"github.com/xucongyong/claude-notify/internal/style"
	"github.com/xucongyong/claude-notify/internal/ui"
)

// Command groups
const (
	GroupSetup = "setup"
	GroupDiag  = "diag"
)

var (
	verbosity  int
	configPath string
	claudeDir  string
)

var rootCmd = &cobra.Command{
	Use:   "claude-notify",
	Short: "Desktop notifications for Claude Code",
	Long: `claude-notify installs hook scripts that show a macOS notification when
Claude Code finishes a task, waits for input, or asks for permission.

Running it with no subcommand installs (or refreshes) everything:
  - hook scripts in ~/.claude/hooks
  - the notification icon in ~/.claude/icons
  - ClaudeNotifier.app, a small helper that posts the notifications
  - Stop, Notification and PermissionRequest entries in ~/.claude/settings.json

Running it again is safe: hooks already in settings.json are not added twice.

Examples:
  claude-notify                  # Install
  claude-notify --dry-run        # Show what would change
  claude-notify --prime          # Install and ask for notification permission now
  claude-notify --uninstall      # Remove everything`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: persistentPreRun,
	RunE:              runInstall,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostics:"},
	)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log output (-v info, -vv debug)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default $CLAUDE_NOTIFY_CONFIG or ~/.config/claude-notify/config.toml)")
	rootCmd.PersistentFlags().StringVar(&claudeDir, "claude-dir", "",
		"Claude configuration directory (default $CLAUDE_CONFIG_DIR or ~/.claude)")
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	ui.InitTheme()
	ui.ApplyThemeMode()
	logging.Setup(verbosity, cmd.ErrOrStderr())
	return nil
}

// loadConfig resolves the configuration: flags over environment over the
// config file over defaults.
func loadConfig() (*config.Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}

	path := configPath
	if path == "" {
		path = config.DefaultFilePath(home)
	}
	cfg, err := config.Load(home, config.ExpandHome(path, home))
	if err != nil {
		return nil, err
	}

	if claudeDir != "" {
		cfg.SetClaudeDir(config.ExpandHome(claudeDir, home))
	}

	log := logging.Get("cmd")
	log.Debug().
		Str("config", path).
		Str("claude_dir", cfg.ClaudeDir).
		Bool("build_notifier", cfg.BuildNotifier).
		Msg("configuration loaded")
	return cfg, nil
}

// newInstaller is swapped out in tests.
var newInstaller = installer.New

// installerExit turns an installer error into the process exit status. The
// installer has already printed the problem and its fix.
func installerExit(err error) error {
	if errors.Is(err, installer.ErrReported) {
		return NewSilentExit(1)
	}
	return err
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := IsSilentExit(err); ok {
			return code
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", style.ErrorPrefix, err)
		return 1
	}
	return 0
}
