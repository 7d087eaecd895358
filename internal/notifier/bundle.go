// Package notifier builds, launches and removes ClaudeNotifier.app, the
// small macOS helper the hook scripts call to post notifications.
package notifier

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/xucongyong/claude-notify/internal/assets"
	"github.com/xucongyong/claude-notify/internal/constants"
	"github.com/xucongyong/claude-notify/internal/logging"
	"github.com/xucongyong/claude-notify/internal/util"
)

// ErrCompile wraps clang failures.
var ErrCompile = errors.New("compiling ClaudeNotifier failed")

// Bundle is the on-disk layout of ClaudeNotifier.app.
type Bundle struct {
	Dir string
}

func (b Bundle) contents() string { return filepath.Join(b.Dir, "Contents") }

// MacOSDir holds the executable.
func (b Bundle) MacOSDir() string { return filepath.Join(b.contents(), "MacOS") }

// ResourcesDir holds the icon and sounds.
func (b Bundle) ResourcesDir() string { return filepath.Join(b.contents(), "Resources") }

// Executable is the compiled helper binary.
func (b Bundle) Executable() string {
	return filepath.Join(b.MacOSDir(), constants.NotifierExecutable)
}

// PlistPath is the bundle's Info.plist.
func (b Bundle) PlistPath() string { return filepath.Join(b.contents(), "Info.plist") }

// Exists reports whether the bundle directory is present.
func (b Bundle) Exists() bool { return util.FileExists(b.Dir) }

// Remove deletes the bundle tree. removed is false when there was nothing
// to delete.
func (b Bundle) Remove() (removed bool, err error) {
	if !b.Exists() {
		return false, nil
	}
	if err := os.RemoveAll(b.Dir); err != nil {
		return false, fmt.Errorf("removing %s: %w", b.Dir, err)
	}
	return true, nil
}

// PlistData fills the Info.plist template.
type PlistData struct {
	Executable  string
	BundleID    string
	DisplayName string
	Version     string
	IconName    string
}

// DefaultPlistData describes the stock ClaudeNotifier bundle.
func DefaultPlistData() PlistData {
	return PlistData{
		Executable:  constants.NotifierExecutable,
		BundleID:    constants.NotifierBundleID,
		DisplayName: constants.NotifierName,
		Version:     constants.NotifierVersion,
		IconName:    "claude",
	}
}

// RenderPlist executes the Info.plist template.
func RenderPlist(tpl []byte, data PlistData) ([]byte, error) {
	t, err := template.New("Info.plist").Option("missingkey=error").Parse(string(tpl))
	if err != nil {
		return nil, fmt.Errorf("parsing plist template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering plist: %w", err)
	}
	return buf.Bytes(), nil
}

// Builder compiles the helper from bundled source and assembles the .app.
type Builder struct {
	Bundle Bundle
	Assets fs.FS
	Runner util.Runner
	// SoundsDir is searched for <name>.aiff for each of NotifierSounds.
	SoundsDir string
}

// BuildResult describes the optional parts of a successful build.
type BuildResult struct {
	IconCopied bool
	Sounds     []string
	// SignErr is set when ad-hoc signing failed. The bundle is still usable
	// on older macOS releases.
	SignErr error
}

// Build compiles and assembles the bundle. iconPath is copied into
// Resources when it exists. Only compilation and file-system failures are
// returned as errors; signing problems land in BuildResult.SignErr.
func (b Builder) Build(iconPath string) (*BuildResult, error) {
	logger := logging.Get("notifier")

	for _, dir := range []string{b.Bundle.MacOSDir(), b.Bundle.ResourcesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	src, cleanup, err := b.extractSource()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := []string{
		"-fobjc-arc",
		"-framework", "Foundation",
		"-framework", "AppKit",
		"-framework", "UserNotifications",
		src, "-o", b.Bundle.Executable(),
	}
	logging.LogCommand(logger, "clang", args)
	if err := b.Runner.Run("clang", args...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	if err := os.Chmod(b.Bundle.Executable(), 0755); err != nil {
		return nil, fmt.Errorf("making notifier executable: %w", err)
	}

	tpl, err := fs.ReadFile(b.Assets, assets.NotifierPlistTpl)
	if err != nil {
		return nil, fmt.Errorf("reading plist template: %w", err)
	}
	plist, err := RenderPlist(tpl, DefaultPlistData())
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(b.Bundle.PlistPath(), plist, 0644); err != nil {
		return nil, fmt.Errorf("writing Info.plist: %w", err)
	}

	res := &BuildResult{}

	if util.FileExists(iconPath) {
		dst := filepath.Join(b.Bundle.ResourcesDir(), constants.FileIcon)
		if err := util.CopyFile(iconPath, dst, 0644); err != nil {
			return nil, fmt.Errorf("copying icon into bundle: %w", err)
		}
		res.IconCopied = true
	}

	for _, name := range constants.NotifierSounds {
		file := name + ".aiff"
		from := filepath.Join(b.SoundsDir, file)
		if !util.FileExists(from) {
			logger.Debug().Str("sound", from).Msg("system sound not found, skipping")
			continue
		}
		if err := util.CopyFile(from, filepath.Join(b.Bundle.ResourcesDir(), file), 0644); err != nil {
			return nil, fmt.Errorf("copying sound %s: %w", file, err)
		}
		res.Sounds = append(res.Sounds, name)
	}

	signArgs := []string{"--sign", "-", "--force", "--deep", b.Bundle.Dir}
	logging.LogCommand(logger, "codesign", signArgs)
	if err := b.Runner.Run("codesign", signArgs...); err != nil {
		logger.Warn().Err(err).Msg("codesign failed")
		res.SignErr = err
	}

	return res, nil
}

// extractSource writes the bundled Objective-C source to a temp file for
// clang.
func (b Builder) extractSource() (path string, cleanup func(), err error) {
	data, err := fs.ReadFile(b.Assets, assets.NotifierSource)
	if err != nil {
		return "", nil, fmt.Errorf("reading notifier source: %w", err)
	}

	f, err := os.CreateTemp("", "ClaudeNotifier-*.m")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp source: %w", err)
	}
	name := f.Name()
	cleanup = func() { _ = os.Remove(name) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp source: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return name, cleanup, nil
}
