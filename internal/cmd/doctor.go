package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/xucongyong/claude-notify/internal/deps"
	"github.com/xucongyong/claude-notify/internal/doctor"
)

var (
	doctorList bool
	doctorFix  bool
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	GroupID: GroupDiag,
	Short:   "Check the notification setup",
	Long: `Run health checks against the installation.

Checks:
  - platform        macOS is required for notifications to show
  - interpreter     the hook interpreter (python3) is on PATH
  - hook-scripts    the three hook scripts exist and are executable
  - icon            the notification icon is installed
  - settings-hooks  settings.json registers every hook
  - notifier-app    ClaudeNotifier.app is built (when enabled)

With --fix, scripts that lost their executable bit are chmodded back and
missing hook registrations are merged into settings.json. An unparseable
settings.json is never rewritten.

Exits 1 when any check reports an error.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorList, "list", false, "List the checks without running them")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair what can be repaired in place")
	doctorCmd.MarkFlagsMutuallyExclusive("list", "fix")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	d := doctor.NewDoctor()
	d.Register(doctor.DefaultChecks()...)

	out := cmd.OutOrStdout()
	if doctorList {
		for _, c := range d.Checks() {
			fmt.Fprintf(out, "%-16s %s\n", c.Name(), c.Description())
		}
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := &doctor.CheckContext{
		Config:  cfg,
		Checker: deps.PathChecker{},
		GOOS:    runtime.GOOS,
	}
	var report *doctor.Report
	if doctorFix {
		report = d.Fix(ctx)
	} else {
		report = d.Run(ctx)
	}
	report.Print(out)

	if report.HasErrors() {
		return NewSilentExit(1)
	}
	return nil
}
