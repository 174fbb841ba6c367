package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultTermWidth = 100

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var (
	colorLesson     = color.New(color.FgCyan, color.Bold)
	colorEvaluation = color.New(color.FgMagenta, color.Bold)
	colorInsight    = color.New(color.FgYellow)
	colorHeader     = color.New(color.Bold)
	colorOK         = color.New(color.FgGreen)
	colorWarn       = color.New(color.FgRed) // entries left off a grid
	colorMuted      = color.New(color.FgWhite, color.Faint)
)

// termWidth is the width of stdout, or defaultTermWidth when it is not a
// terminal.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}

// setColorMode applies a --color value. In auto mode fatih/color keeps its
// own terminal and NO_COLOR detection.
func setColorMode(mode string) error {
	switch mode {
	case colorAuto, "":
	case colorAlways:
		color.NoColor = false
	case colorNever:
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color %q: want %s, %s or %s", mode, colorAuto, colorAlways, colorNever)
	}
	return nil
}

// DisableColor turns off colored output.
func DisableColor() {
	color.NoColor = true
}

func formatLesson(s string) string     { return colorLesson.Sprint(s) }
func formatEvaluation(s string) string { return colorEvaluation.Sprint(s) }
func formatInsight(s string) string    { return colorInsight.Sprint(s) }
func formatHeader(s string) string     { return colorHeader.Sprint(s) }
func formatOK(s string) string         { return colorOK.Sprint(s) }
func formatWarn(s string) string       { return colorWarn.Sprint(s) }
func formatMuted(s string) string      { return colorMuted.Sprint(s) }
