package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDarken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "#ffffff", want: "#808080"},
		{in: "#000000", want: "#292929"},
		{in: "#ff0000", want: "#802929"},
		{in: "oops", want: "oops"},
	}
	for _, tt := range tests {
		if got := darken(tt.in); got != tt.want {
			t.Errorf("darken(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		a, b  string
		ratio float64
		want  string
	}{
		{a: "#000000", b: "#ffffff", ratio: 0.5, want: "#808080"},
		{a: "#000000", b: "#ffffff", ratio: 0, want: "#000000"},
		{a: "#000000", b: "#ffffff", ratio: 2, want: "#ffffff"},
		{a: "#123456", b: "bad", ratio: 0.5, want: "#123456"},
	}
	for _, tt := range tests {
		if got := blend(tt.a, tt.b, tt.ratio); got != tt.want {
			t.Errorf("blend(%q, %q, %v): got %q, want %q", tt.a, tt.b, tt.ratio, got, tt.want)
		}
	}
}

func TestReadableOn(t *testing.T) {
	if got := readableOn("#000000", "#ffffff", "#111111"); got != "#ffffff" {
		t.Errorf("on black: got %q, want #ffffff", got)
	}
	if got := readableOn("#ffffff", "#eeeeee", "#111111"); got != "#111111" {
		t.Errorf("on white: got %q, want #111111", got)
	}
}

func TestPalette_Card(t *testing.T) {
	p := NewPalette(nil)

	lesson, _ := p.Card("#ffffff", false)
	if lesson != lipgloss.Color("#808080") {
		t.Errorf("got %q, want #808080", lesson)
	}

	invalid, _ := p.Card("", false)
	fallback, _ := p.Card(p.theme.Lesson, false)
	if invalid != fallback {
		t.Errorf("invalid color: got %q, want lesson color %q", invalid, fallback)
	}

	eval, _ := p.Card("#ffffff", true)
	if eval == lesson {
		t.Error("evaluations should be tinted")
	}

	if cont := p.Continuation("#ffffff", false); cont == lesson {
		t.Error("continuation should differ from the origin cell")
	}
}

func TestPalette_LightTheme(t *testing.T) {
	dark := NewPalette(nil)
	light, err := Load("latte")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lp := NewPalette(light)
	if !lp.isLight || dark.isLight {
		t.Fatalf("got light=%v dark=%v", lp.isLight, dark.isLight)
	}

	bgLight, _ := lp.Card("#1e66f5", false)
	bgDark, _ := dark.Card("#1e66f5", false)
	if luminance(string(bgLight)) <= luminance(string(bgDark)) {
		t.Errorf("light theme card %q should be brighter than %q", bgLight, bgDark)
	}
}
