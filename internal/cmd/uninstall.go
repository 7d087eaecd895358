package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xucongyong/claude-notify/internal/ui"
)

var uninstallForce bool

var uninstallCmd = &cobra.Command{
	Use:     "uninstall",
	GroupID: GroupSetup,
	Short:   "Remove Claude Code notifications",
	Long: `Remove everything claude-notify installed.

Removes:
  - ClaudeNotifier.app
  - the hook scripts and the icon
  - this tool's entries from settings.json (other settings are kept)
  - the stored macOS notification permission

Use --force to skip the confirmation prompt. The prompt is also skipped
when stdin is not a terminal.

Examples:
  claude-notify uninstall            # Ask, then remove
  claude-notify uninstall --force    # Remove without asking`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallForce, "force", "f", false,
		"Skip confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !uninstallForce && ui.IsInteractive(cmd.InOrStdin()) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will remove Claude Code notifications.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "The following will be removed:")
		fmt.Fprintf(out, "  • %s\n", cfg.NotifierApp)
		fmt.Fprintf(out, "  • Hook scripts in %s\n", cfg.HooksDir)
		fmt.Fprintf(out, "  • %s\n", cfg.IconPath())
		fmt.Fprintf(out, "  • Notification hooks in %s\n", cfg.SettingsPath)
		fmt.Fprintln(out)
		fmt.Fprint(out, "Continue? [y/N] ")

		reader := bufio.NewReader(cmd.InOrStdin())
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	_, err = newInstaller(cfg, cmd.OutOrStdout()).Uninstall()
	return installerExit(err)
}
