package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/horario/internal/catalog"
	"github.com/javiermolinar/horario/internal/timetable"
	"github.com/javiermolinar/horario/internal/tui/theme"
	"github.com/javiermolinar/horario/internal/tui/view"
)

// Column widths, recalculated from the terminal width.
const (
	slotColWidth    = 11
	minCellWidth    = 6
	defaultColWidth = 14
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg            lipgloss.Color
	colorModalBackdrop lipgloss.Color

	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	SlotColumnStyle     lipgloss.Style

	EmptyCellStyle lipgloss.Style
	CursorStyle    lipgloss.Style
	BorderStyle    lipgloss.Style

	ReportStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	Modal view.ModalStyles

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		palette:            p,
		colorBg:            p.Bg,
		colorModalBackdrop: p.BgHighlight,
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.Bg)

	s.SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(p.Fg).
		Background(p.Bg).
		Width(defaultColWidth)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(p.Accent)

	s.SlotColumnStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg).
		Width(slotColWidth)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg).
		Width(defaultColWidth)

	s.CursorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnSelection).
		Background(p.BgSelection).
		Width(defaultColWidth)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)

	s.ReportStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Background(p.Bg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.PromptStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)

	s.Modal = view.ModalStyles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			BorderBackground(p.BgHighlight).
			Background(p.BgHighlight).
			Foreground(p.Fg).
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Background(p.BgHighlight),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.FgMuted).
			Background(p.BgHighlight),
		Text: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgHighlight),
		Hint: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.BgHighlight),
	}

	s.AppStyle = lipgloss.NewStyle().
		Background(p.Bg).
		Padding(0, 1)

	return s
}

// CardStyle returns the cell style of an origin cell.
func (s *Styles) CardStyle(c *catalog.Card) lipgloss.Style {
	eval := c.Kind == timetable.KindEvaluation
	bg, fg := s.palette.Card(c.Color, eval)
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Width(defaultColWidth)
	if eval {
		style = style.Bold(true).Underline(true)
	}
	return style
}

// ContinuationStyle returns the cell style of a continuation cell.
func (s *Styles) ContinuationStyle(c *catalog.Card) lipgloss.Style {
	eval := c.Kind == timetable.KindEvaluation
	_, fg := s.palette.Card(c.Color, eval)
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(s.palette.Continuation(c.Color, eval)).
		Align(lipgloss.Center).
		Width(defaultColWidth)
}
