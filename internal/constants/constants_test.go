package constants

import "testing"

func TestHookScriptsDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range HookScripts() {
		if seen[s] {
			t.Errorf("duplicate script name %q", s)
		}
		seen[s] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 scripts, got %d", len(seen))
	}
}
