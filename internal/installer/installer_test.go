package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xucongyong/claude-notify/internal/assets"
	"github.com/xucongyong/claude-notify/internal/claude"
	"github.com/xucongyong/claude-notify/internal/config"
	"github.com/xucongyong/claude-notify/internal/constants"
	"github.com/xucongyong/claude-notify/internal/style"
)

type fakeChecker map[string]bool

func (c fakeChecker) Available(name string) bool { return c[name] }

// fakeRunner records every command. Commands listed in fail return that
// error; onRun lets a test react to a command (e.g. make a tool appear).
type fakeRunner struct {
	calls []string
	fail  map[string]error
	onRun func(name string, args []string)
}

func (r *fakeRunner) Output(name string, args ...string) (string, error) {
	return "", r.Run(name, args...)
}

func (r *fakeRunner) Run(name string, args ...string) error {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	if err := r.fail[name]; err != nil {
		return err
	}
	if r.onRun != nil {
		r.onRun(name, args)
	}
	if name == "clang" {
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				return os.WriteFile(args[i+1], []byte("bin"), 0644)
			}
		}
	}
	return nil
}

func (r *fakeRunner) ran(name string) bool {
	for _, c := range r.calls {
		if strings.HasPrefix(c, name+" ") {
			return true
		}
	}
	return false
}

func bundledAssets() fstest.MapFS {
	fsys := fstest.MapFS{
		assets.IconPath:         {Data: []byte("png")},
		assets.NotifierSource:   {Data: []byte("int main(void) { return 0; }\n")},
		assets.NotifierPlistTpl: {Data: []byte("<id>{{.BundleID}}</id>")},
	}
	for _, s := range constants.HookScripts() {
		fsys[assets.HooksDir+"/"+s] = &fstest.MapFile{Data: []byte("#!/usr/bin/env python3\n")}
	}
	return fsys
}

type harness struct {
	in     *Installer
	runner *fakeRunner
	check  fakeChecker
	out    *bytes.Buffer
	slept  []time.Duration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	cfg := config.Default(home)
	cfg.BuildNotifier = false

	h := &harness{
		runner: &fakeRunner{},
		check:  fakeChecker{"python3": true, "clang": true},
		out:    &bytes.Buffer{},
	}
	h.in = &Installer{
		Config:    cfg,
		Runner:    h.runner,
		Checker:   h.check,
		Assets:    bundledAssets(),
		Out:       style.NewReporter(h.out),
		GOOS:      constants.SupportedOS,
		SoundsDir: filepath.Join(home, "no-sounds"),
		Sleep:     func(d time.Duration) { h.slept = append(h.slept, d) },
	}
	return h
}

func (h *harness) settings(t *testing.T) *claude.Document {
	t.Helper()
	doc, state, err := claude.LoadSettings(h.in.Config.SettingsPath)
	require.NoError(t, err)
	require.Equal(t, claude.SettingsLoaded, state)
	return doc
}

func (h *harness) writeSettings(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(h.in.Config.ClaudeDir, 0755))
	require.NoError(t, os.WriteFile(h.in.Config.SettingsPath, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
