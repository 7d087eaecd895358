package notifier

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xucongyong/claude-notify/internal/assets"
)

// scriptedRunner records calls and fails the commands named in fail. A
// successful clang writes a stub binary to its -o target.
type scriptedRunner struct {
	calls []string
	fail  map[string]error
}

func (r *scriptedRunner) Output(name string, args ...string) (string, error) {
	return "", r.Run(name, args...)
}

func (r *scriptedRunner) Run(name string, args ...string) error {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	if err := r.fail[name]; err != nil {
		return err
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

func (r *scriptedRunner) called(name string) bool {
	for _, c := range r.calls {
		if strings.HasPrefix(c, name+" ") {
			return true
		}
	}
	return false
}

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		assets.NotifierSource:   {Data: []byte("int main(void) { return 0; }\n")},
		assets.NotifierPlistTpl: {Data: []byte("<id>{{.BundleID}}</id><exe>{{.Executable}}</exe>")},
	}
}

func newBuilder(t *testing.T, r *scriptedRunner) (Builder, string) {
	t.Helper()
	root := t.TempDir()
	return Builder{
		Bundle:    Bundle{Dir: filepath.Join(root, "ClaudeNotifier.app")},
		Assets:    testAssets(),
		Runner:    r,
		SoundsDir: filepath.Join(root, "sounds"),
	}, root
}

func TestBuildAssemblesBundle(t *testing.T) {
	r := &scriptedRunner{}
	b, root := newBuilder(t, r)

	icon := filepath.Join(root, "claude.png")
	require.NoError(t, os.WriteFile(icon, []byte("png"), 0644))
	require.NoError(t, os.MkdirAll(b.SoundsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(b.SoundsDir, "Glass.aiff"), []byte("aiff"), 0644))

	res, err := b.Build(icon)
	require.NoError(t, err)

	info, err := os.Stat(b.Bundle.Executable())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	plist, err := os.ReadFile(b.Bundle.PlistPath())
	require.NoError(t, err)
	assert.Equal(t, "<id>com.claude-code.notifier</id><exe>ClaudeNotifier</exe>", string(plist))

	assert.True(t, res.IconCopied)
	assert.FileExists(t, filepath.Join(b.Bundle.ResourcesDir(), "claude.png"))
	assert.Equal(t, []string{"Glass"}, res.Sounds)
	assert.FileExists(t, filepath.Join(b.Bundle.ResourcesDir(), "Glass.aiff"))
	assert.NoFileExists(t, filepath.Join(b.Bundle.ResourcesDir(), "Funk.aiff"))
	assert.NoError(t, res.SignErr)

	require.Len(t, r.calls, 2)
	assert.Contains(t, r.calls[0], "clang -fobjc-arc -framework Foundation -framework AppKit -framework UserNotifications")
	assert.Equal(t, "codesign --sign - --force --deep "+b.Bundle.Dir, r.calls[1])
}

func TestBuildCompileFailureIsHard(t *testing.T) {
	r := &scriptedRunner{fail: map[string]error{"clang": errors.New("exit status 1")}}
	b, _ := newBuilder(t, r)

	_, err := b.Build("")
	require.ErrorIs(t, err, ErrCompile)
	assert.False(t, r.called("codesign"))
	assert.NoFileExists(t, b.Bundle.PlistPath())
}

func TestBuildSignFailureIsSoft(t *testing.T) {
	signErr := errors.New("codesign unavailable")
	r := &scriptedRunner{fail: map[string]error{"codesign": signErr}}
	b, _ := newBuilder(t, r)

	res, err := b.Build(filepath.Join(t.TempDir(), "missing.png"))
	require.NoError(t, err)
	assert.ErrorIs(t, res.SignErr, signErr)
	assert.False(t, res.IconCopied)
	assert.Empty(t, res.Sounds)
	assert.FileExists(t, b.Bundle.PlistPath())
}

func TestBuildRemovesTempSource(t *testing.T) {
	var src string
	r := &scriptedRunner{}
	b, _ := newBuilder(t, r)

	_, err := b.Build("")
	require.NoError(t, err)

	for _, f := range strings.Fields(r.calls[0]) {
		if strings.HasSuffix(f, ".m") {
			src = f
		}
	}
	require.NotEmpty(t, src)
	assert.NoFileExists(t, src)
}

func TestBundleRemove(t *testing.T) {
	b := Bundle{Dir: filepath.Join(t.TempDir(), "ClaudeNotifier.app")}

	removed, err := b.Remove()
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, os.MkdirAll(b.MacOSDir(), 0755))
	removed, err = b.Remove()
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoDirExists(t, b.Dir)
}

func TestRenderBundledPlist(t *testing.T) {
	data, err := fs.ReadFile(assets.FS(), assets.NotifierPlistTpl)
	require.NoError(t, err)

	out, err := RenderPlist(data, DefaultPlistData())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<string>com.claude-code.notifier</string>")
	assert.Contains(t, s, "<string>ClaudeNotifier</string>")
	assert.NotContains(t, s, "{{")
}

func TestRenderPlistRejectsBadTemplate(t *testing.T) {
	_, err := RenderPlist([]byte("{{.Nope"), DefaultPlistData())
	assert.Error(t, err)
}
