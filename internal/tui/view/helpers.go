package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox places content top-left or bottom-left in a w x h box filled
// with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground cuts or extends content to exactly height lines
// and pads every line shorter than width with bg.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	fill := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + fill.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderModalOverlay draws modal centred over base. The modal keeps its
// background across the resets of styled spans inside it.
func RenderModalOverlay(base, modal string, width, height int, modalBg lipgloss.Color) string {
	block := modalBlock(modal, width, modalBg)
	if len(block) == 0 {
		return base
	}
	blockW := lipgloss.Width(block[0])
	top := max((height-len(block))/2, 0)
	left := max((width-blockW)/2, 0)

	rows := strings.Split(PadLinesWithBackground(base, width, height, ""), "\n")
	for i, line := range block {
		row := top + i
		if row >= len(rows) {
			break
		}
		rows[row] = ansi.Cut(rows[row], 0, left) + line + ansi.Cut(rows[row], left+blockW, width)
	}
	return strings.Join(rows, "\n")
}

// modalBlock squares modal off to its widest line, capped at maxWidth.
func modalBlock(modal string, maxWidth int, bg lipgloss.Color) []string {
	lines := strings.Split(modal, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	w = min(w, maxWidth)
	if w <= 0 {
		return nil
	}

	fill := lipgloss.NewStyle().Background(bg)
	bgSeq := backgroundSeq(bg)
	for i, l := range lines {
		if lw := lipgloss.Width(l); lw > w {
			l = ansi.Cut(l, 0, w)
		} else if lw < w {
			l += fill.Render(strings.Repeat(" ", w-lw))
		}
		if bgSeq != "" {
			l = strings.NewReplacer(
				ansi.ResetStyle, ansi.ResetStyle+bgSeq,
				"\x1b[0m", "\x1b[0m"+bgSeq,
				"\x1b[49m", "\x1b[49m"+bgSeq,
			).Replace(l)
		}
		lines[i] = l + ansi.ResetStyle
	}
	return lines
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
