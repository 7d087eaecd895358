// Package assets holds the files claude-notify installs: the hook scripts,
// the notification icon, and the source and Info.plist template for the
// ClaudeNotifier helper app.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed hooks/*.py icons/claude.png notifier/ClaudeNotifier.m notifier/Info.plist.tmpl
var bundled embed.FS

// Paths of the bundled files, relative to the root of FS().
const (
	HooksDir         = "hooks"
	IconPath         = "icons/claude.png"
	NotifierSource   = "notifier/ClaudeNotifier.m"
	NotifierPlistTpl = "notifier/Info.plist.tmpl"
)

// FS returns the bundled asset tree.
func FS() fs.FS {
	return bundled
}
