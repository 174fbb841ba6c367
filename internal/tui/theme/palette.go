package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	darkCardScale   = 0.5  // dark themes draw cards at half the subject brightness
	darkCardFloor   = 0.16 // no channel below this, so cards stay visible on the bg
	lightCardBlend  = 0.75 // light themes wash subject colors towards the bg
	evaluationTint  = 0.35
	lightLuminance  = 0.55
	continuationMix = 0.30
)

// Palette holds the colors styles are built from.
type Palette struct {
	Bg              lipgloss.Color
	BgHighlight     lipgloss.Color
	BgSelection     lipgloss.Color
	Fg              lipgloss.Color
	FgMuted         lipgloss.Color
	Accent          lipgloss.Color
	Warning         lipgloss.Color
	TextOnSelection lipgloss.Color

	theme   Theme
	isLight bool
}

// NewPalette derives a Palette from t, or from the default theme when t is
// nil.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}
	return &Palette{
		Bg:              lipgloss.Color(t.Bg),
		BgHighlight:     lipgloss.Color(t.BgHighlight),
		BgSelection:     lipgloss.Color(t.BgSelection),
		Fg:              lipgloss.Color(t.Fg),
		FgMuted:         lipgloss.Color(t.FgMuted),
		Accent:          lipgloss.Color(t.Accent),
		Warning:         lipgloss.Color(t.Warning),
		TextOnSelection: lipgloss.Color(readableOn(t.BgSelection, t.Bg, t.Fg)),
		theme:           *t,
		isLight:         luminance(t.Bg) > lightLuminance,
	}
}

// Card returns the background and text colors of a cell drawn for a
// subject color. Evaluations are tinted towards the theme evaluation
// color. Invalid colors use the theme lesson color.
func (p *Palette) Card(subjectColor string, evaluation bool) (bg, fg lipgloss.Color) {
	hex := p.cardBg(subjectColor, evaluation)
	return lipgloss.Color(hex), lipgloss.Color(readableOn(hex, p.theme.Fg, p.theme.Bg))
}

// Continuation returns the background of the cells an evaluation spans
// below its first slot: the card shifted towards white, or black on light
// themes.
func (p *Palette) Continuation(subjectColor string, evaluation bool) lipgloss.Color {
	toward := "#ffffff"
	if p.isLight {
		toward = "#000000"
	}
	mix := continuationMix
	if p.isLight {
		mix /= 3
	}
	return lipgloss.Color(blend(p.cardBg(subjectColor, evaluation), toward, mix))
}

func (p *Palette) cardBg(subjectColor string, evaluation bool) string {
	base := subjectColor
	if !isHex(base) {
		base = p.theme.Lesson
	}
	if evaluation {
		base = blend(base, p.theme.Evaluation, evaluationTint)
	}
	if p.isLight {
		return blend(base, p.theme.Bg, lightCardBlend)
	}
	return darken(base)
}

func isHex(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := colorful.Hex(s)
	return err == nil
}

// darken scales hex to darkCardScale with a floor of darkCardFloor per
// channel. Invalid input is returned as is.
func darken(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	scale := func(v float64) float64 { return max(v*darkCardScale, darkCardFloor) }
	return colorful.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B)}.Clamped().Hex()
}

// blend mixes a towards b by ratio in RGB space. Invalid input returns a.
func blend(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendRgb(cb, min(max(ratio, 0), 1)).Clamped().Hex()
}

// readableOn picks whichever of lightText and darkText contrasts more with
// bg.
func readableOn(bg, lightText, darkText string) string {
	if contrast(bg, lightText) >= contrast(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrast is the WCAG contrast ratio of two colors.
func contrast(a, b string) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// luminance is the WCAG relative luminance of hex, 0 when invalid.
func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
