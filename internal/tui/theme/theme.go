// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none or an unknown one is asked for.
const DefaultName = "mocha"

// ErrInvalidColor is returned when a theme file holds a color that is not
// #rrggbb.
var ErrInvalidColor = errors.New("invalid theme color")

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header, detail panel
	BgSelection string `toml:"bg_selection"` // Cursor
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Slot labels, empty cells
	Accent      string `toml:"accent"`       // Title, borders
	Lesson      string `toml:"lesson"`       // Lessons without a subject color
	Evaluation  string `toml:"evaluation"`   // Evaluation tint
	Warning     string `toml:"warning"`      // Layout reports
}

// Load reads the named theme. Unknown names load the default theme.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsAvailable(name) {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}
	return parse(name, data)
}

func parse(name string, data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.applyDefaults()
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}
	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.BgHighlight = cmpOr(t.BgHighlight, t.Bg)
	t.BgSelection = cmpOr(t.BgSelection, t.BgHighlight)
	t.FgMuted = cmpOr(t.FgMuted, t.Fg)
	t.Lesson = cmpOr(t.Lesson, t.Accent)
	t.Evaluation = cmpOr(t.Evaluation, t.Warning, t.Accent)
	t.Warning = cmpOr(t.Warning, t.Accent)
}

func (t *Theme) validate() error {
	fields := []struct{ key, value string }{
		{"bg", t.Bg},
		{"bg_highlight", t.BgHighlight},
		{"bg_selection", t.BgSelection},
		{"fg", t.Fg},
		{"fg_muted", t.FgMuted},
		{"accent", t.Accent},
		{"lesson", t.Lesson},
		{"evaluation", t.Evaluation},
		{"warning", t.Warning},
	}
	for _, f := range fields {
		if !isHex(f.value) {
			return fmt.Errorf("%w: %s = %q", ErrInvalidColor, f.key, f.value)
		}
	}
	return nil
}

func cmpOr(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the sorted names of the bundled themes.
func Available() []string {
	entries, err := fs.ReadDir(embeddedThemes, "embedded")
	if err != nil {
		return []string{DefaultName}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".toml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	slices.Sort(names)
	return names
}

// IsAvailable reports whether name is a bundled theme.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
