package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/horario/internal/grid"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Timetable.Days) != 6 {
		t.Errorf("expected 6 timetable days, got %d", len(cfg.Timetable.Days))
	}
	if len(cfg.Timetable.Slots) != 8 {
		t.Errorf("expected 8 timetable slots, got %d", len(cfg.Timetable.Slots))
	}
	if len(cfg.Evaluations.Slots) != 10 {
		t.Errorf("expected 10 evaluation slots, got %d", len(cfg.Evaluations.Slots))
	}
	if cfg.Evaluations.Slots[0] != "08:00-09:00" || cfg.Evaluations.Slots[9] != "17:00-18:00" {
		t.Errorf("unexpected evaluation slots %v", cfg.Evaluations.Slots)
	}
	if cfg.LLM.Provider != "copilot" {
		t.Errorf("expected provider copilot, got %s", cfg.LLM.Provider)
	}
	if cfg.Log.Format != "pretty" {
		t.Errorf("expected log format pretty, got %s", cfg.Log.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("expected default server addr, got %s", cfg.Server.Addr)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[timetable]
days = ["monday", "tuesday", "wednesday"]
slots = ["08:00-10:00", "10:00-12:00"]

[llm]
provider = "ollama"
model = "llama3"
base_url = "http://localhost:11435"

[storage]
db_path = "/tmp/test.db"

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	axis := cfg.TimetableAxis()
	if axis.NumDays() != 3 || axis.NumSlots() != 2 || axis.SlotWidth() != 120 {
		t.Errorf("got axis %d days %d slots width %d", axis.NumDays(), axis.NumSlots(), axis.SlotWidth())
	}
	// Unset sections keep their defaults
	if len(cfg.Evaluations.Slots) != 10 {
		t.Errorf("expected default evaluation slots, got %v", cfg.Evaluations.Slots)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected provider ollama, got %s", cfg.LLM.Provider)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("expected debug/json logging, got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/test.db"

[server]
addr = ":9000"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("HORARIO_TIMETABLE_DAYS", "monday, friday")
	t.Setenv("HORARIO_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("HORARIO_DB_PATH", "/tmp/env.db")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.Timetable.Days; len(got) != 2 || got[1] != "friday" {
		t.Errorf("expected days from env, got %v", got)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("expected model from env, got %s", cfg.LLM.Model)
	}
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected db_path from env, got %s", cfg.Storage.DBPath)
	}
	// File value should be kept when no env override
	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr from file, got %s", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "overlapping slots", mutate: func(c *Config) { c.Timetable.Slots = []string{"08:00-09:00", "08:30-09:30"} }, wantErr: grid.ErrSlotsOverlap},
		{name: "uneven slots", mutate: func(c *Config) { c.Evaluations.Slots = []string{"08:00-09:00", "09:00-11:00"} }, wantErr: grid.ErrUnevenSlots},
		{name: "no days", mutate: func(c *Config) { c.Timetable.Days = nil }, wantErr: grid.ErrNoDays},
		{name: "bad slot label", mutate: func(c *Config) { c.Timetable.Slots = []string{"8-9"} }, wantErr: grid.ErrInvalidSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_InvalidDay(t *testing.T) {
	cfg := Default()
	cfg.Timetable.Days = []string{"monday", "funday"}

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid day")
	}
}

func TestValidate_LogFormat(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "xml"

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown log format")
	}
}

func TestValidate_LLM(t *testing.T) {
	tests := []struct {
		name        string
		provider    string
		temperature float64
		wantErr     bool
	}{
		{name: "default", provider: "copilot"},
		{name: "alias", provider: "lm-studio", temperature: 0.5},
		{name: "unknown provider", provider: "bard", wantErr: true},
		{name: "temperature too high", provider: "ollama", temperature: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.LLM.Provider = tt.provider
			cfg.LLM.Temperature = tt.temperature
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("got error %v, want error %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := ExpandPath(tc.input)
			if got != tc.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Timetable.Days = []string{"monday", "tuesday", "wednesday", "thursday"}
	cfg.Evaluations.Slots = []string{"09:00-10:00", "10:00-11:00"}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(loaded.Timetable.Days) != 4 {
		t.Errorf("expected 4 days, got %d", len(loaded.Timetable.Days))
	}
	if got := loaded.EvaluationAxis().NumSlots(); got != 2 {
		t.Errorf("expected 2 evaluation slots, got %d", got)
	}
}
