package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Stage", KeyStage, "inventory", Stage("inventory")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Root", KeyRoot, "content", Root("content")},
		{"Config", KeyConfig, "siteconf.yaml", Config("siteconf.yaml")},
		{"Plugin", KeyPlugin, "toc", Plugin("toc")},
		{"Filter", KeyFilter, "console", Filter("console")},
		{"Mode", KeyMode, "root", Mode("root")},
		{"Format", KeyFormat, "json", Format("json")},
		{"Event", KeyEvent, "CREATE", Event("CREATE")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s value mismatch: got %s want %s", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := Dirs(3); got.Key != KeyDirs || got.Value.Int64() != 3 {
		t.Fatalf("Dirs attr wrong: %v", got)
	}
	if got := Entries(7); got.Key != KeyEntries || got.Value.Int64() != 7 {
		t.Fatalf("Entries attr wrong: %v", got)
	}
	if got := DurationMS(1.5); got.Key != KeyDurationMS || got.Value.Float64() != 1.5 {
		t.Fatalf("DurationMS attr wrong: %v", got)
	}
}

func TestErrorHelper(t *testing.T) {
	if got := Error(nil); got.Value.String() != "" {
		t.Fatalf("nil error should be empty, got %q", got.Value.String())
	}
	if got := Error(errors.New("boom")); got.Value.String() != "boom" {
		t.Fatalf("error value mismatch: %q", got.Value.String())
	}
}
