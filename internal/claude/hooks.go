package claude

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xucongyong/claude-notify/internal/constants"
)

// Hook events claude-notify registers for.
const (
	EventStop              = "Stop"
	EventNotification      = "Notification"
	EventPermissionRequest = "PermissionRequest"
)

// NotificationMatcher limits the Notification hook to the prompts worth a
// desktop alert.
const NotificationMatcher = "idle_prompt|permission_prompt"

// HookCommand is one entry of a group's "hooks" list.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// HookGroup is one element of an event's list in settings.json.
type HookGroup struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

// PrimaryCommand is the command of the group's first hook.
func (g HookGroup) PrimaryCommand() string {
	if len(g.Hooks) == 0 {
		return ""
	}
	return g.Hooks[0].Command
}

// EventEntries are the groups to register for one event.
type EventEntries struct {
	Event  string
	Groups []HookGroup
}

// Entries is an ordered set of events to register.
type Entries []EventEntries

// ScriptCommand is the command line that runs script with interpreter.
// The path is quoted so directories with spaces survive the shell.
func ScriptCommand(interpreter, script string) string {
	return fmt.Sprintf(`%s "%s"`, interpreter, script)
}

// BuildEntries returns the hook configuration for scripts living in
// hooksDir. It does no I/O.
func BuildEntries(hooksDir, interpreter string) Entries {
	group := func(matcher, script string) []HookGroup {
		return []HookGroup{{
			Matcher: matcher,
			Hooks: []HookCommand{{
				Type:    "command",
				Command: ScriptCommand(interpreter, filepath.Join(hooksDir, script)),
			}},
		}}
	}

	return Entries{
		{Event: EventStop, Groups: group("", constants.ScriptStop)},
		{Event: EventNotification, Groups: group(NotificationMatcher, constants.ScriptNotification)},
		{Event: EventPermissionRequest, Groups: group("", constants.ScriptPermissionRequest)},
	}
}

// NormalizeCommand strips double quotes and collapses whitespace runs so
// `python3 "a/b.py"` and `python3   a/b.py` compare equal. Path case is
// left alone.
func NormalizeCommand(cmd string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(cmd, `"`, "")), " ")
}

// Merge appends every group in entries whose primary command is not already
// registered under the same event, and returns how many were added. The
// comparison looks at every hook of every existing group but ignores
// matchers. The "hooks" key is created even when nothing is added.
func Merge(doc *Document, entries Entries) (int, error) {
	t := doc.hookTable()
	added := 0

	for _, ev := range entries {
		for _, g := range ev.Groups {
			if t.hasCommand(ev.Event, g.PrimaryCommand()) {
				continue
			}
			raw, err := marshalGroup(g)
			if err != nil {
				return added, err
			}
			t.append(ev.Event, raw)
			added++
		}
	}

	if err := doc.setHooks(t); err != nil {
		return 0, err
	}
	return added, nil
}

// Strip removes every group that has a command mentioning one of scripts,
// drops events left without groups and drops "hooks" once it is empty. It
// returns how many groups were removed.
func Strip(doc *Document, scripts []string) (int, error) {
	if !gjson.GetBytes(doc.raw, hooksKey).IsObject() {
		return 0, nil
	}

	t := doc.hookTable()
	removed := 0

	for _, ev := range append([]string(nil), t.events...) {
		groups, isList := t.lists[ev]
		if !isList {
			continue
		}
		kept := groups[:0:0]
		for _, g := range groups {
			if mentionsAny(groupCommands(g), scripts) {
				removed++
				continue
			}
			kept = append(kept, g)
		}
		if len(kept) == 0 {
			t.remove(ev)
			continue
		}
		t.lists[ev] = kept
	}

	if len(t.events) == 0 {
		return removed, doc.deleteHooks()
	}
	return removed, doc.setHooks(t)
}

func mentionsAny(commands, scripts []string) bool {
	for _, c := range commands {
		for _, s := range scripts {
			if strings.Contains(c, s) {
				return true
			}
		}
	}
	return false
}

func marshalGroup(g HookGroup) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("encoding hook group: %w", err)
	}
	return json.RawMessage(bytes.TrimSpace(buf.Bytes())), nil
}

func groupCommands(group json.RawMessage) []string {
	var out []string
	gjson.GetBytes(group, "hooks.#.command").ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}

// hookTable is the "hooks" object with event order kept. Groups stay raw so
// fields this tool does not know (timeouts, extra hooks) round-trip intact.
type hookTable struct {
	events []string
	lists  map[string][]json.RawMessage
	// other holds event values that are not arrays; they are written back
	// as-is unless Merge has to replace them.
	other map[string]json.RawMessage
}

func (d *Document) hookTable() *hookTable {
	t := &hookTable{
		lists: make(map[string][]json.RawMessage),
		other: make(map[string]json.RawMessage),
	}

	hooks := gjson.GetBytes(d.raw, hooksKey)
	if !hooks.IsObject() {
		return t
	}

	hooks.ForEach(func(k, v gjson.Result) bool {
		ev := k.String()
		if !t.has(ev) {
			t.events = append(t.events, ev)
		}
		if v.IsArray() {
			groups := []json.RawMessage{}
			v.ForEach(func(_, g gjson.Result) bool {
				groups = append(groups, json.RawMessage(g.Raw))
				return true
			})
			t.lists[ev] = groups
			delete(t.other, ev)
		} else {
			t.other[ev] = json.RawMessage(v.Raw)
			delete(t.lists, ev)
		}
		return true
	})
	return t
}

func (t *hookTable) has(ev string) bool {
	for _, e := range t.events {
		if e == ev {
			return true
		}
	}
	return false
}

func (t *hookTable) hasCommand(ev, command string) bool {
	want := NormalizeCommand(command)
	for _, g := range t.lists[ev] {
		for _, c := range groupCommands(g) {
			if NormalizeCommand(c) == want {
				return true
			}
		}
	}
	return false
}

func (t *hookTable) append(ev string, group json.RawMessage) {
	if !t.has(ev) {
		t.events = append(t.events, ev)
	}
	delete(t.other, ev)
	t.lists[ev] = append(t.lists[ev], group)
}

func (t *hookTable) remove(ev string) {
	for i, e := range t.events {
		if e == ev {
			t.events = append(t.events[:i], t.events[i+1:]...)
			break
		}
	}
	delete(t.lists, ev)
	delete(t.other, ev)
}

// MarshalJSON writes the table back as a JSON object in event order.
func (t *hookTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ev := range t.events {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ev)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		if raw, ok := t.other[ev]; ok {
			buf.Write(raw)
			continue
		}
		buf.WriteByte('[')
		for j, g := range t.lists[ev] {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.Write(g)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
