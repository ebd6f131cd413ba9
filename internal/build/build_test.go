package build

import "testing"

func TestVersion(t *testing.T) {
	if got := Version(); got != "0.1.0" {
		t.Errorf("Version() = %q, want embedded 0.1.0", got)
	}

	orig := version
	t.Cleanup(func() { version = orig })
	version = "9.9.9"
	if got := Version(); got != "9.9.9" {
		t.Errorf("Version() with ldflags = %q, want 9.9.9", got)
	}
}
