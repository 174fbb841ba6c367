package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetup_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	log := Setup("warn", "json", &buf)

	log.Info().Msg("hidden")
	log.Warn().Int("collisions", 2).Msg("layout report")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["message"] != "layout report" {
		t.Errorf("got message %v, want %q", entry["message"], "layout report")
	}
	if entry["collisions"] != float64(2) {
		t.Errorf("got collisions %v, want 2", entry["collisions"])
	}
}

func TestSetup_InvalidLevelDefaultsToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	log := Setup("loud", "pretty", &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info message missing: %q", out)
	}
}
