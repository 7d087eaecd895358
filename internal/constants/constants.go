// Package constants defines the fixed names claude-notify installs under.
// Centralizing these strings keeps install, uninstall and doctor in sync.
package constants

import "time"

// Directory and file names under the Claude configuration root.
const (
	// DirClaude is the Claude Code configuration root under $HOME.
	DirClaude = ".claude"

	// DirHooks holds the hook scripts.
	DirHooks = "hooks"

	// DirIcons holds the notification icon.
	DirIcons = "icons"

	// FileSettings is the Claude Code settings document.
	FileSettings = "settings.json"

	// FileIcon is the icon shown in notifications.
	FileIcon = "claude.png"
)

// Hook script file names. Uninstall matches settings entries against these.
const (
	ScriptStop              = "stop-notification.py"
	ScriptNotification      = "notification-with-icon.py"
	ScriptPermissionRequest = "permission-request-notification.py"
)

// HookScripts returns every script name in install order.
func HookScripts() []string {
	return []string{ScriptStop, ScriptNotification, ScriptPermissionRequest}
}

// ClaudeNotifier.app layout.
const (
	NotifierApp        = "ClaudeNotifier.app"
	NotifierExecutable = "ClaudeNotifier"
	NotifierBundleID   = "com.claude-code.notifier"
	NotifierName       = "Claude Code"
	NotifierVersion    = "1.0"
)

// NotifierSounds are copied from the system sound library into the bundle.
var NotifierSounds = []string{"Funk", "Glass"}

// SystemSoundsDir is where macOS keeps its alert sounds.
const SystemSoundsDir = "/System/Library/Sounds"

// DefaultInterpreter runs the hook scripts.
const DefaultInterpreter = "python3"

// DefaultPrimeWait is how long to let the permission dialog surface after
// launching the notifier.
const DefaultPrimeWait = 2 * time.Second

// SupportedOS is the only platform with a working notification pipeline.
const SupportedOS = "darwin"
