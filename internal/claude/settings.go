// Package claude provides Claude Code configuration management.
//
// A settings.json is kept as raw JSON rather than decoded into Go maps: gjson
// walks it, sjson rewrites only the "hooks" key, so every other top-level
// key keeps its position and bytes across a read-modify-write.
package claude

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/xucongyong/claude-notify/internal/util"
)

// ErrInvalidDocument is returned for settings that are not a JSON object.
var ErrInvalidDocument = errors.New("settings is not a valid JSON object")

const hooksKey = "hooks"

// Document is a parsed settings.json.
type Document struct {
	raw []byte
}

// NewDocument returns an empty settings document.
func NewDocument() *Document {
	return &Document{raw: []byte("{}")}
}

// ParseDocument validates data as a JSON object.
func ParseDocument(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, ErrInvalidDocument
	}
	return &Document{raw: bytes.Clone(data)}, nil
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	var keys []string
	gjson.ParseBytes(d.raw).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// Field returns the raw JSON of a top-level key.
func (d *Document) Field(key string) (json.RawMessage, bool) {
	var (
		raw   json.RawMessage
		found bool
	)
	gjson.ParseBytes(d.raw).ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			raw, found = json.RawMessage(v.Raw), true
			return false
		}
		return true
	})
	return raw, found
}

// HasHooks reports whether the document carries a "hooks" key.
func (d *Document) HasHooks() bool {
	_, ok := d.Field(hooksKey)
	return ok
}

// Events returns the hook event names in document order.
func (d *Document) Events() []string {
	return d.hookTable().events
}

// GroupCount returns how many hook groups are registered for event.
func (d *Document) GroupCount(event string) int {
	return len(d.hookTable().lists[event])
}

// Commands returns every hook command registered for event, in order.
func (d *Document) Commands(event string) []string {
	var out []string
	for _, g := range d.hookTable().lists[event] {
		out = append(out, groupCommands(g)...)
	}
	return out
}

// Bytes renders the document as two-space indented JSON with a trailing
// newline.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, d.raw, "", "  "); err != nil {
		return nil, fmt.Errorf("formatting settings: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (d *Document) setHooks(t *hookTable) error {
	raw, err := t.MarshalJSON()
	if err != nil {
		return err
	}
	out, err := sjson.SetRawBytes(d.raw, hooksKey, raw)
	if err != nil {
		return fmt.Errorf("updating hooks: %w", err)
	}
	d.raw = out
	return nil
}

func (d *Document) deleteHooks() error {
	out, err := sjson.DeleteBytes(d.raw, hooksKey)
	if err != nil {
		return fmt.Errorf("removing hooks: %w", err)
	}
	d.raw = out
	return nil
}

// LoadState describes what LoadSettings found on disk.
type LoadState int

const (
	// SettingsLoaded means the file existed and parsed.
	SettingsLoaded LoadState = iota
	// SettingsMissing means there was no file; an empty document is returned.
	SettingsMissing
	// SettingsInvalid means the file did not parse; an empty document is
	// returned and saving it discards the old content.
	SettingsInvalid
)

func (s LoadState) String() string {
	switch s {
	case SettingsLoaded:
		return "loaded"
	case SettingsMissing:
		return "missing"
	case SettingsInvalid:
		return "invalid"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// LoadSettings reads the settings file at path. A missing or unparseable
// file yields an empty document and the matching state; only I/O failures
// other than "not found" are errors.
func LoadSettings(path string) (*Document, LoadState, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from config
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), SettingsMissing, nil
		}
		return nil, SettingsMissing, fmt.Errorf("reading settings: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return NewDocument(), SettingsInvalid, nil
	}
	return doc, SettingsLoaded, nil
}

// SaveSettings writes doc to path, creating the parent directory. An
// existing file keeps its permission bits.
func SaveSettings(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := doc.Bytes()
	if err != nil {
		return err
	}

	if err := util.AtomicWriteFile(path, data, util.FileMode(path, 0644)); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
