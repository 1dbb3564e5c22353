package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantWarn  bool
		wantErr   bool
	}{
		{"", false, true, false},
		{"debug", true, true, false},
		{"error", false, false, false},
		{"loud", false, false, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l, err := New(&buf, tt.level)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) err = %v, wantErr %v", tt.level, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		l.Debug("debug line")
		l.Warn("warn line", "op", "add")
		out := buf.String()
		if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
			t.Errorf("level %q: debug logged = %v, want %v", tt.level, got, tt.wantDebug)
		}
		if got := strings.Contains(out, "warn line"); got != tt.wantWarn {
			t.Errorf("level %q: warn logged = %v, want %v", tt.level, got, tt.wantWarn)
		}
		if tt.wantWarn && !strings.Contains(out, "op=add") {
			t.Errorf("level %q: key/value missing in %q", tt.level, out)
		}
	}
}
