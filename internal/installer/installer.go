// Package installer wires the hook scripts, icon and ClaudeNotifier helper
// into a Claude configuration directory, and takes them out again.
//
// Install and Uninstall are straight-line pipelines. Steps marked hard
// return an error and stop the run; soft steps print a warning and carry on.
package installer

import (
	"errors"
	"io"
	"io/fs"
	"runtime"
	"time"

	"github.com/xucongyong/claude-notify/internal/assets"
	"github.com/xucongyong/claude-notify/internal/config"
	"github.com/xucongyong/claude-notify/internal/constants"
	"github.com/xucongyong/claude-notify/internal/deps"
	"github.com/xucongyong/claude-notify/internal/notifier"
	"github.com/xucongyong/claude-notify/internal/style"
	"github.com/xucongyong/claude-notify/internal/util"
)

// ErrReported marks an error the installer has already shown to the
// operator along with its remediation.
var ErrReported = errors.New("reported")

// Installer holds everything a run needs. Zero-valued collaborators are
// filled in by New; tests set them directly.
type Installer struct {
	Config  *config.Config
	Runner  util.Runner
	Checker deps.Checker
	Assets  fs.FS
	Out     *style.Reporter

	// GOOS is the platform the run is checked against.
	GOOS string
	// SoundsDir is where notifier sounds are copied from.
	SoundsDir string
	// DryRun runs the checks and reports the merge without writing.
	DryRun bool
	// Sleep waits after priming the notifier.
	Sleep func(time.Duration)
}

// New returns an Installer using the real file system, PATH and bundled
// assets, reporting to out.
func New(cfg *config.Config, out io.Writer) *Installer {
	return &Installer{
		Config:    cfg,
		Runner:    util.ExecRunner{},
		Checker:   deps.PathChecker{},
		Assets:    assets.FS(),
		Out:       style.NewReporter(out),
		GOOS:      runtime.GOOS,
		SoundsDir: constants.SystemSoundsDir,
		Sleep:     time.Sleep,
	}
}

func (in *Installer) bundle() notifier.Bundle {
	return notifier.Bundle{Dir: in.Config.NotifierApp}
}

// reported wraps err so the entry point knows not to print it again.
func reported(err error) error {
	return &reportedError{err: err}
}

type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() []error {
	return []error{e.err, ErrReported}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
