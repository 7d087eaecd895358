package style

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestStyleVariables(t *testing.T) {
	// Test that all style variables render non-empty output
	tests := []struct {
		name   string
		render func(...string) string
	}{
		{"Success", Success.Render},
		{"Warning", Warning.Render},
		{"Error", Error.Render},
		{"Info", Info.Render},
		{"Dim", Dim.Render},
		{"Bold", Bold.Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.render("test")
			if result == "" {
				t.Errorf("Style %s.Render() should not return empty string", tt.name)
			}
		})
	}
}

func TestPrefixVariables(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"SuccessPrefix", SuccessPrefix},
		{"WarningPrefix", WarningPrefix},
		{"ErrorPrefix", ErrorPrefix},
		{"InfoPrefix", InfoPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prefix == "" {
				t.Errorf("Prefix variable %s should not be empty", tt.name)
			}
		})
	}
}

func TestPrintWarning(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	PrintWarning("test warning: %s", "value")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	if !bytes.Contains(buf.Bytes(), []byte("test warning: value")) {
		t.Error("PrintWarning() output should contain the warning message")
	}
}

func TestReporterLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.OK("copied %d scripts", 3)
	r.Info("settings not found")
	r.Warn("icon missing")
	r.Fail("python3 not found")
	r.Detail("install it", "then retry")

	out := buf.String()
	for _, want := range []string{
		"copied 3 scripts",
		"settings not found",
		"icon missing",
		"python3 not found",
		"   install it\n",
		"   then retry\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 6 {
		t.Errorf("expected 6 lines, got %d", got)
	}
}

func TestReporterHeading(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Heading("Setup")
	if !strings.Contains(buf.String(), "Setup") || !strings.Contains(buf.String(), "─") {
		t.Errorf("heading output = %q", buf.String())
	}
}

func TestTableRender(t *testing.T) {
	tbl := NewTable(
		Column{Name: "CHECK", Width: 10},
		Column{Name: "STATUS", Width: 6, Align: AlignRight},
	)
	tbl.AddRow("scripts", "ok")
	tbl.AddRow("a-very-long-check-name", "warn")

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[3], "a-very-...") {
		t.Errorf("long value not truncated: %q", lines[3])
	}
}

func TestTableAlignsMultiByteCells(t *testing.T) {
	tbl := NewTable(
		Column{Name: "", Width: 2},
		Column{Name: "NAME", Width: 6},
	).SetHeaderSeparator(false).SetIndent("")
	tbl.AddRow("✓", "icon")
	tbl.AddRow("x", "icon")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(lines))
	}
	if got, want := strings.Index(lines[1], "icon")-len("✓")+1, strings.Index(lines[2], "icon"); got != want {
		t.Errorf("columns misaligned:\n%q\n%q", lines[1], lines[2])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much-too-long", 8, "much-..."},
		{"héllo wörld", 8, "héllo..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
