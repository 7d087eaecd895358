package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity stays at trace", 7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Setup(tt.verbosity, &bytes.Buffer{})
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestGetTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Setup(1, &buf)

	logger := Get("installer")
	logger.Info().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "installer")
}

func TestWarnLevelSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	Setup(0, &buf)

	logger := Get("deps")
	logger.Info().Msg("quiet")
	assert.NotContains(t, buf.String(), "quiet")

	logger.Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	Setup(2, &buf)

	LogCommand(Get("notifier"), "clang", []string{"-o", "out"})
	assert.Contains(t, buf.String(), "clang")
	assert.Contains(t, buf.String(), "running command")
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.False(t, isTerminal(&bytes.Buffer{}))
	assert.False(t, isTerminal(f), "regular file is not a terminal")
}

func TestSetupFileOutputHasNoColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	Setup(0, f)
	logger := Get("file")
	logger.Warn().Msg("plain")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Contains(t, string(data), "plain")
	assert.NotContains(t, string(data), "\x1b[")
}
