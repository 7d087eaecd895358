package doctor

import "errors"

var (
	// ErrCannotFix is returned by checks that only diagnose, and by fixes
	// that need a full reinstall.
	ErrCannotFix = errors.New("cannot be fixed in place; run claude-notify to reinstall")

	// ErrSettingsInvalid stops the settings fix from overwriting a file it
	// cannot parse.
	ErrSettingsInvalid = errors.New("settings.json is not valid JSON; fix it by hand first")
)
