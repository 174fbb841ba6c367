// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/llm"
)

// Config holds the application configuration.
type Config struct {
	Timetable   AxisConfig    `toml:"timetable"`
	Evaluations AxisConfig    `toml:"evaluations"`
	LLM         LLMConfig     `toml:"llm"`
	Storage     StorageConfig `toml:"storage"`
	UI          UIConfig      `toml:"ui"`
	Log         LogConfig     `toml:"log"`
	Server      ServerConfig  `toml:"server"`
}

// AxisConfig describes the days and slots of one grid.
type AxisConfig struct {
	Days  []string `toml:"days"`  // e.g., ["monday", "tuesday", ...]
	Slots []string `toml:"slots"` // e.g., ["08:00-09:00", "09:00-10:00"]
}

// Axis builds the grid axis described by the section.
func (a AxisConfig) Axis() (grid.Axis, error) {
	return grid.ParseAxis(a.Days, a.Slots)
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider    string  `toml:"provider"`    // "copilot", "ollama", "lmstudio"
	Model       string  `toml:"model"`       // e.g., "gpt-4o"
	BaseURL     string  `toml:"base_url"`    // e.g., "http://localhost:11434"
	Temperature float64 `toml:"temperature"` // 0 uses the client default
}

// Settings converts the section for llm.NewClient.
func (l LLMConfig) Settings() llm.Settings {
	return llm.Settings{
		Provider:    l.Provider,
		Model:       l.Model,
		BaseURL:     l.BaseURL,
		Temperature: l.Temperature,
	}
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // trace, debug, info, warn, error
	Format string `toml:"format"` // "pretty" or "json"
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	AllowOrigins []string `toml:"allow_origins"`
}

var schoolDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timetable: AxisConfig{
			Days: append([]string(nil), schoolDays...),
			Slots: []string{
				"08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00",
				"14:00-15:00", "15:00-16:00", "16:00-17:00", "17:00-18:00",
			},
		},
		Evaluations: AxisConfig{
			Days:  append([]string(nil), schoolDays...),
			Slots: hourlySlots(8, 18),
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "pretty",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			AllowOrigins: []string{"http://localhost:5173"},
		},
	}
}

// hourlySlots returns one-hour slot labels from hour `from` to hour `to`.
func hourlySlots(from, to int) []string {
	slots := make([]string, 0, to-from)
	for h := from; h < to; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00-%02d:00", h, h+1))
	}
	return slots
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "horario.db"
	}
	return filepath.Join(home, ".local", "share", "horario", "horario.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "horario", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = ExpandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// Axis overrides
	if v := os.Getenv("HORARIO_TIMETABLE_DAYS"); v != "" {
		cfg.Timetable.Days = splitList(v)
	}
	if v := os.Getenv("HORARIO_TIMETABLE_SLOTS"); v != "" {
		cfg.Timetable.Slots = splitList(v)
	}
	if v := os.Getenv("HORARIO_EVALUATION_DAYS"); v != "" {
		cfg.Evaluations.Days = splitList(v)
	}
	if v := os.Getenv("HORARIO_EVALUATION_SLOTS"); v != "" {
		cfg.Evaluations.Slots = splitList(v)
	}

	// LLM overrides
	if v := os.Getenv("HORARIO_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("HORARIO_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("HORARIO_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("HORARIO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("HORARIO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("HORARIO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HORARIO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("HORARIO_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HORARIO_ALLOW_ORIGINS"); v != "" {
		cfg.Server.AllowOrigins = splitList(v)
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExpandPath expands a leading ~/ to the home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.Timetable.Axis(); err != nil {
		return fmt.Errorf("timetable: %w", err)
	}
	if _, err := c.Evaluations.Axis(); err != nil {
		return fmt.Errorf("evaluations: %w", err)
	}
	for _, day := range append(append([]string(nil), c.Timetable.Days...), c.Evaluations.Days...) {
		if !isValidWeekday(day) {
			return fmt.Errorf("invalid day: %s", day)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !llm.ValidProvider(c.LLM.Provider) {
		return fmt.Errorf("llm provider must be one of %s, got %q", strings.Join(llm.Providers(), ", "), c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature must be between 0 and 2, got %v", c.LLM.Temperature)
	}
	switch c.Log.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("log format must be pretty or json, got %q", c.Log.Format)
	}
	return nil
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func isValidWeekday(day string) bool {
	return validWeekdays[strings.ToLower(strings.TrimSpace(day))]
}

// TimetableAxis returns the validated weekly timetable axis.
func (c *Config) TimetableAxis() grid.Axis {
	a, err := c.Timetable.Axis()
	if err != nil {
		return grid.MustParseAxis(Default().Timetable.Days, Default().Timetable.Slots)
	}
	return a
}

// EvaluationAxis returns the validated evaluation planner axis.
func (c *Config) EvaluationAxis() grid.Axis {
	a, err := c.Evaluations.Axis()
	if err != nil {
		return grid.MustParseAxis(Default().Evaluations.Days, Default().Evaluations.Slots)
	}
	return a
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
