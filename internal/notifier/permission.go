package notifier

import (
	"github.com/xucongyong/claude-notify/internal/constants"
	"github.com/xucongyong/claude-notify/internal/logging"
	"github.com/xucongyong/claude-notify/internal/util"
)

// Prime launches the bundle through LaunchServices with a welcome
// notification. Started that way the app counts as foreground, so macOS
// shows its permission dialog now instead of suppressing it the first time
// a hook fires from the background.
func Prime(r util.Runner, b Bundle, iconPath string) error {
	args := []string{
		b.Dir, "--args",
		constants.NotifierName,
		"Notifications are enabled",
		"Glass.aiff",
		iconPath,
	}
	logging.LogCommand(logging.Get("notifier"), "open", args)
	return r.Run("open", args...)
}

// ResetPermission clears the stored notification grant for the bundle id.
func ResetPermission(r util.Runner) error {
	args := []string{"reset", "All", constants.NotifierBundleID}
	logging.LogCommand(logging.Get("notifier"), "tccutil", args)
	return r.Run("tccutil", args...)
}

// ManualPermissionSteps tells the operator how to grant or reset the
// permission by hand.
func ManualPermissionSteps() []string {
	return []string{
		"Open System Settings → Notifications → " + constants.NotifierName,
		"and set \"Allow Notifications\" as you prefer.",
	}
}
