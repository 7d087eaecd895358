// Package config resolves where claude-notify installs things and which
// optional steps run. A Config is built once at startup and passed to every
// component; nothing reads $HOME on its own.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xucongyong/claude-notify/internal/constants"
)

// Environment variables consulted by Load.
const (
	EnvConfigFile = "CLAUDE_NOTIFY_CONFIG"
	EnvClaudeDir  = "CLAUDE_CONFIG_DIR"
)

// Config holds resolved paths and feature flags.
type Config struct {
	Home         string
	ClaudeDir    string
	HooksDir     string
	IconsDir     string
	SettingsPath string
	NotifierApp  string

	// Interpreter runs the hook scripts.
	Interpreter string

	// BuildNotifier compiles and installs ClaudeNotifier.app.
	BuildNotifier bool
	// PrimePermission launches the notifier once so macOS asks for
	// notification permission right away.
	PrimePermission bool
	// AutoInstallDeps installs missing tools through Homebrew.
	AutoInstallDeps bool
	// PrimeWait is how long to wait after priming.
	PrimeWait time.Duration
}

// Default returns the configuration for a user whose home directory is home.
func Default(home string) *Config {
	c := &Config{
		Home:          home,
		Interpreter:   constants.DefaultInterpreter,
		BuildNotifier: runtime.GOOS == constants.SupportedOS,
		PrimeWait:     constants.DefaultPrimeWait,
	}
	c.SetClaudeDir(filepath.Join(home, constants.DirClaude))
	return c
}

// SetClaudeDir moves the configuration root and recomputes every path under it.
func (c *Config) SetClaudeDir(dir string) {
	c.ClaudeDir = dir
	c.HooksDir = filepath.Join(dir, constants.DirHooks)
	c.IconsDir = filepath.Join(dir, constants.DirIcons)
	c.SettingsPath = filepath.Join(dir, constants.FileSettings)
	c.NotifierApp = filepath.Join(dir, constants.NotifierApp)
}

// IconPath is the installed icon.
func (c *Config) IconPath() string {
	return filepath.Join(c.IconsDir, constants.FileIcon)
}

// ScriptPath is the installed location of a hook script.
func (c *Config) ScriptPath(name string) string {
	return filepath.Join(c.HooksDir, name)
}

// File is the on-disk TOML configuration. Unset fields keep their defaults.
type File struct {
	ClaudeDir       string   `toml:"claude_dir"`
	Interpreter     string   `toml:"interpreter"`
	BuildNotifier   *bool    `toml:"build_notifier"`
	PrimePermission *bool    `toml:"prime_permission"`
	AutoInstallDeps *bool    `toml:"auto_install_deps"`
	PrimeWait       Duration `toml:"prime_wait"`
}

// Duration is a wrapper for time.Duration that supports TOML marshaling.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for Duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultFilePath returns where the config file is looked up:
// $CLAUDE_NOTIFY_CONFIG, else $XDG_CONFIG_HOME/claude-notify/config.toml,
// else ~/.config/claude-notify/config.toml.
func DefaultFilePath(home string) string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "claude-notify", "config.toml")
}

// Load builds the Config for home. The file at path is optional: a missing
// file leaves defaults in place, a malformed one is an error. $CLAUDE_CONFIG_DIR
// overrides claude_dir from the file.
func Load(home, path string) (*Config, error) {
	cfg := Default(home)

	if path != "" {
		file, err := loadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if file != nil {
			cfg.apply(file)
		}
	}

	if dir := os.Getenv(EnvClaudeDir); dir != "" {
		cfg.SetClaudeDir(ExpandHome(dir, home))
	}

	return cfg, nil
}

func loadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// apply merges file into c. Only values present in the file are applied.
func (c *Config) apply(f *File) {
	if f.ClaudeDir != "" {
		c.SetClaudeDir(ExpandHome(f.ClaudeDir, c.Home))
	}
	if f.Interpreter != "" {
		c.Interpreter = f.Interpreter
	}
	if f.BuildNotifier != nil {
		c.BuildNotifier = *f.BuildNotifier
	}
	if f.PrimePermission != nil {
		c.PrimePermission = *f.PrimePermission
	}
	if f.AutoInstallDeps != nil {
		c.AutoInstallDeps = *f.AutoInstallDeps
	}
	if f.PrimeWait.Duration != 0 {
		c.PrimeWait = f.PrimeWait.Duration
	}
}

// ExpandHome replaces a leading "~" with home.
func ExpandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
