package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "warn", true); err != nil {
		t.Fatal(err)
	}
	Log().Info().Msg("hidden")
	Log().Warn().Str("device", "rdseed").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["message"] != "shown" || rec["device"] != "rdseed" || rec["level"] != "warn" {
		t.Errorf("got %v", rec)
	}
}

func TestSetupConsole(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "", false); err != nil {
		t.Fatal(err)
	}
	Log().Info().Msg("collecting")
	if out := buf.String(); !strings.Contains(out, "INF") || !strings.Contains(out, "collecting") {
		t.Errorf("got %q", out)
	}
}

func TestSetupBadLevel(t *testing.T) {
	if err := Setup(&bytes.Buffer{}, "loud", true); err == nil {
		t.Error("unknown level accepted")
	}
}
